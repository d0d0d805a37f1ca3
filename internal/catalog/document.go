package catalog

import "encoding/json"

// Kind distinguishes finished publications from in-progress projects.
type Kind string

const (
	KindPublication Kind = "publication"
	KindProject     Kind = "current_project"
)

// Document is one entry in the reference catalog. Publications carry an ID,
// optional enriched metadata, and keywords; projects carry a status and an
// external URL instead of an ID.
type Document struct {
	ID          string
	Title       string
	Description string
	Year        int
	Keywords    []string
	Topics      []string
	Kind        Kind
	Status      string
	URL         string
}

// stringList tolerates bulk-catalog records that store a single keyword as a
// bare string instead of an array.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*s = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*s = []string{one}
	return nil
}
