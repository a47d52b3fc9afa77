package submission

import (
	"fmt"
	"sort"
	"strings"

	"Backend-Retreat-Survey/src/models"
)

// QuestionMapper resolves survey question ids to the integer ids the
// response store uses. It is read-only configuration.
type QuestionMapper interface {
	Lookup(questionID string) (int, bool)
}

type StaticMapper map[string]int

func NewStaticMapper(m map[string]int) StaticMapper {
	out := make(StaticMapper, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m StaticMapper) Lookup(questionID string) (int, bool) {
	id, ok := m[questionID]
	return id, ok
}

// CheckMapping fails when any question of the definition has no persisted id,
// so drift between the two is caught at startup instead of at submit time.
func CheckMapping(def *models.SurveyDefinition, mapper QuestionMapper) error {
	var missing []string
	for _, q := range def.Questions() {
		if _, ok := mapper.Lookup(q.ID); !ok {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &MappingError{QuestionIDs: missing}
}

// MappingError reports question ids that have no persisted id.
type MappingError struct {
	QuestionIDs []string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("no persisted question id for: %s", strings.Join(e.QuestionIDs, ", "))
}

func (e *MappingError) Is(target error) bool { return target == ErrIntegrity }
