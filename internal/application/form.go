// internal/application/form.go
//
// Form state for the mortgage demos. Values are kept exactly as typed;
// nothing is parsed until the scorer runs.

package application

// Field names shared by every form.
const (
	FieldName     = "name"
	FieldAge      = "age"
	FieldIncome   = "income"
	FieldMortgage = "mortgage"
)

// FieldKind controls how a field is edited. Number fields only accept
// digits and a decimal point in the terminal UI.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
)

// FieldSpec declares one input on a form.
type FieldSpec struct {
	Name        string
	Label       string
	Placeholder string
	Kind        FieldKind
	Required    bool
}

// Fields maps a field name to its raw string value.
type Fields map[string]string

// ReviewFields are the inputs of the client/bank/regulator workflow.
func ReviewFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldName, Label: "Name", Placeholder: "Enter your name", Kind: KindText, Required: true},
		{Name: FieldAge, Label: "Age", Placeholder: "Enter your age", Kind: KindNumber, Required: true},
		{Name: FieldIncome, Label: "Annual Income ($)", Placeholder: "Enter your income", Kind: KindNumber, Required: true},
		{Name: FieldMortgage, Label: "Mortgage amount ($)", Placeholder: "Enter the mortgage amount", Kind: KindNumber, Required: true},
	}
}

// QuickFields are the inputs of the single-form mortgage application.
func QuickFields() []FieldSpec {
	return []FieldSpec{
		{Name: FieldName, Label: "Name", Placeholder: "Enter your name", Kind: KindText, Required: true},
		{Name: FieldAge, Label: "Age", Placeholder: "Enter your age", Kind: KindNumber, Required: true},
		{Name: FieldIncome, Label: "Annual Income", Placeholder: "Enter your income", Kind: KindNumber, Required: true},
	}
}

// Form pairs a fixed set of field specs with their current values.
type Form struct {
	specs  []FieldSpec
	values Fields
}

// NewForm returns an empty form for the given specs.
func NewForm(specs []FieldSpec) Form {
	cp := make([]FieldSpec, len(specs))
	copy(cp, specs)
	return Form{specs: cp, values: Fields{}}
}

// Specs returns the field declarations in display order.
func (f Form) Specs() []FieldSpec {
	return f.specs
}

// Spec looks up a field declaration by name.
func (f Form) Spec(name string) (FieldSpec, bool) {
	for _, spec := range f.specs {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// Get returns the raw value of a field, or "" when unset.
func (f Form) Get(name string) string {
	return f.values[name]
}

// Set stores a raw value. Unknown fields are ignored and report false.
func (f *Form) Set(name, value string) bool {
	if _, ok := f.Spec(name); !ok {
		return false
	}
	if f.values == nil {
		f.values = Fields{}
	}
	f.values[name] = value
	return true
}

// Snapshot copies the current values, including empty entries for every
// declared field.
func (f Form) Snapshot() Fields {
	out := make(Fields, len(f.specs))
	for _, spec := range f.specs {
		out[spec.Name] = f.values[spec.Name]
	}
	return out
}

// Clone returns a form that shares no mutable state with f.
func (f Form) Clone() Form {
	clone := NewForm(f.specs)
	for k, v := range f.values {
		clone.values[k] = v
	}
	return clone
}

// Cleared returns an empty form with the same specs.
func (f Form) Cleared() Form {
	return NewForm(f.specs)
}

// IsEmpty reports whether every field is blank.
func (f Form) IsEmpty() bool {
	for _, v := range f.values {
		if v != "" {
			return false
		}
	}
	return true
}

// Validate reports whether every required field holds a non-empty string.
// Numbers are not checked here; the scorer maps bad input to zero.
func Validate(f Form) bool {
	return len(MissingFields(f)) == 0
}

// MissingFields lists the labels of required fields that are still empty.
func MissingFields(f Form) []string {
	var missing []string
	for _, spec := range f.specs {
		if spec.Required && f.values[spec.Name] == "" {
			missing = append(missing, spec.Label)
		}
	}
	return missing
}
