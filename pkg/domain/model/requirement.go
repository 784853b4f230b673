package model

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

// RequirementTable maps a change type to the documents it requires
type RequirementTable map[types.ChangeType][]string

// DefaultRequirementTable returns the built-in document requirements
func DefaultRequirementTable() RequirementTable {
	return RequirementTable{
		types.ChangeTypeAddressUpdate:      {"Proof of Address"},
		types.ChangeTypeEntityTypeChange:   {"Certificate of Incorporation", "Board Resolution"},
		types.ChangeTypeNameChange:         {"Certificate of Name Change", "Board Resolution"},
		types.ChangeTypeContactInformation: {"Proof of Identity"},
		types.ChangeTypeOther:              {},
	}
}

// Validate checks that every key is a known change type and no document name is empty
func (t RequirementTable) Validate() error {
	for changeType, names := range t {
		if !changeType.IsValid() {
			return goerr.Wrap(ErrValidation, "unknown change type in requirement table",
				goerr.V("change_type", changeType))
		}
		for _, name := range names {
			if name == "" {
				return goerr.Wrap(ErrValidation, "empty document name in requirement table",
					goerr.V("change_type", changeType))
			}
		}
	}
	return nil
}

// Merge returns a table where entries of override replace the receiver's
func (t RequirementTable) Merge(override RequirementTable) RequirementTable {
	merged := make(RequirementTable, len(t)+len(override))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// Resolve returns the union of documents required by the change requests
func (t RequirementTable) Resolve(changeRequests []ChangeRequest) RequiredDocuments {
	names := make(map[string]struct{})
	for _, cr := range changeRequests {
		for _, name := range t[cr.TypeOfChange] {
			names[name] = struct{}{}
		}
	}
	return RequiredDocuments{names: names}
}

// RequiredDocuments is the set of document names a case must have uploaded
type RequiredDocuments struct {
	names map[string]struct{}
}

// Names returns the required document names in sorted order
func (r RequiredDocuments) Names() []string {
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Any reports whether at least one document is required. Callers hide the
// documents surface when it is false.
func (r RequiredDocuments) Any() bool {
	return len(r.names) > 0
}

// Has reports whether name is required
func (r RequiredDocuments) Has(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Apply retags Required on every document by name membership and returns the
// required names that have no document yet. It never adds or removes documents.
func (r RequiredDocuments) Apply(documents []Document) []string {
	present := make(map[string]struct{}, len(documents))
	for i := range documents {
		documents[i].Required = r.Has(documents[i].Name)
		present[documents[i].Name] = struct{}{}
	}

	var missing []string
	for _, name := range r.Names() {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
