package validation

import (
	"fmt"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/server/models"
)

type TaskInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=350"`
}

type TaskEditInput struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=350"`
}

var taskFieldNames = map[string]string{
	"ID":          "id",
	"Name":        "name",
	"Description": "description",
	"AccountID":   "account_id",
}

// NewTask validates a create payload. Absent keys and non-string values are
// both validation errors here, unlike TaskEdit.
func NewTask(obj Object) (TaskInput, error) {
	var in TaskInput

	for _, f := range []struct {
		key string
		dst *string
	}{
		{"name", &in.Name},
		{"description", &in.Description},
	} {
		raw, ok := obj[f.key]
		if !ok {
			return TaskInput{}, &FieldError{Field: f.key, Reason: "is required", Err: common.ErrValidation}
		}
		s, ok := stringValue(raw)
		if !ok {
			return TaskInput{}, &FieldError{Field: f.key, Reason: "must be a string", Err: common.ErrValidation}
		}
		*f.dst = s
	}

	if err := checkStruct(in, taskFieldNames); err != nil {
		return TaskInput{}, err
	}
	return in, nil
}

// TaskEdit validates an edit payload. All of name, description and id must
// be present; missing keys are reported together.
func TaskEdit(obj Object) (TaskEditInput, error) {
	var missing []string
	for _, k := range []string{"name", "description", "id"} {
		if _, ok := obj[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return TaskEditInput{}, &MissingKeysError{Keys: missing}
	}

	var in TaskEditInput
	var ok bool

	if in.Name, ok = stringValue(obj["name"]); !ok {
		return TaskEditInput{}, &FieldError{Field: "name", Reason: "must be a string", Err: common.ErrWrongType}
	}
	if in.Description, ok = stringValue(obj["description"]); !ok {
		return TaskEditInput{}, &FieldError{Field: "description", Reason: "must be a string", Err: common.ErrWrongType}
	}
	if in.ID, ok = intValue(obj["id"]); !ok {
		return TaskEditInput{}, &FieldError{Field: "id", Reason: "must be an integer", Err: common.ErrWrongType}
	}

	if err := checkStruct(in, taskFieldNames); err != nil {
		return TaskEditInput{}, err
	}
	return in, nil
}

// DoneFlag extracts the strict boolean under "bool".
func DoneFlag(obj Object) (bool, error) {
	raw, ok := obj["bool"]
	if !ok || isNull(raw) {
		return false, fmt.Errorf("%w: bool is required", common.ErrBadPayload)
	}
	v, ok := boolValue(raw)
	if !ok {
		return false, fmt.Errorf("%w: bool must be true or false", common.ErrBadPayload)
	}
	return v, nil
}

type storedTask struct {
	ID           int64  `validate:"gt=0"`
	AccountID    int64  `validate:"gt=0"`
	Name         string `validate:"required,max=200"`
	Description  string `validate:"max=350"`
	LastModified bool   `validate:"eq=true"`
}

// StoredTask re-checks a record read back from the store. A failure means
// the store holds data no write path could have produced.
func StoredTask(t *models.Task) error {
	if t == nil {
		return fmt.Errorf("%w: nil task", common.ErrCorruptRecord)
	}
	err := validate.Struct(storedTask{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Name:         t.Name,
		Description:  t.Description,
		LastModified: !t.LastModified.IsZero(),
	})
	if err != nil {
		return fmt.Errorf("%w: task %d: %v", common.ErrCorruptRecord, t.ID, err)
	}
	return nil
}
