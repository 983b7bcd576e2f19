package codec

import "github.com/goliatone/go-metabox/pkg/model"

// Action is what the panel controller should do with a field's record.
type Action int

const (
	NoOp Action = iota
	Persist
	Delete
)

func (a Action) String() string {
	switch a {
	case Persist:
		return "persist"
	case Delete:
		return "delete"
	default:
		return "noop"
	}
}

// Decision pairs an action with the value to write for Persist.
type Decision struct {
	Action Action
	Value  any
}

// Submission is the value read from the request for one field. Present is
// false when the field's key was missing from the panel payload and Value
// holds the kind's fallback ("" or an empty set).
type Submission struct {
	Value   any
	Present bool
}

// Decide applies the flat-mode policy. Fields that save their default always
// persist. Otherwise the record is deleted when the submitted value equals the
// default (strictly, or by string form when both are numeric), when brand-new
// content never submitted the field, or when a multi-select came back empty.
func Decide(field model.Field, sub Submission, isUpdate bool) Decision {
	if field.SaveDefault {
		return Decision{Action: Persist, Value: sub.Value}
	}

	if set, ok := AsSet(sub.Value); ok {
		if len(set) == 0 || (!isUpdate && !sub.Present) {
			return Decision{Action: Delete}
		}
		return Decision{Action: Persist, Value: sub.Value}
	}

	strict := StrictEqual(sub.Value, field.Default)
	submitted, _ := StringForm(sub.Value)
	stringsEqual := submitted == field.Default
	bothNumeric := IsNumeric(sub.Value) && IsNumeric(field.Default)

	if strict || (bothNumeric && stringsEqual) || (!isUpdate && !sub.Present) {
		return Decision{Action: Delete}
	}
	return Decision{Action: Persist, Value: sub.Value}
}
