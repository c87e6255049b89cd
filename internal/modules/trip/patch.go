// README: Typed partial-update structure; the only path to a dynamic SET clause.
package trip

import "time"

// Patch carries the editable trip fields. A nil field is left untouched; the
// store translates present fields into parameterized assignments, so caller
// input never reaches SQL as a column name.
type Patch struct {
	Title               *string
	Category            *Category
	Origin              *string
	Destination         *string
	Stops               *[]string
	PreferredDate       *time.Time
	PreferredTime       *string
	ReturnDate          *time.Time
	ReturnTime          *string
	PassengerCount      *int
	PassengerNames      *[]string
	ContactName         *string
	ContactPhone        *string
	ContactEmail        *string
	VehicleType         *string
	SpecialRequirements *string
	BudgetCents         *int64
	Notes               *string
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil &&
		p.Category == nil &&
		p.Origin == nil &&
		p.Destination == nil &&
		p.Stops == nil &&
		p.PreferredDate == nil &&
		p.PreferredTime == nil &&
		p.ReturnDate == nil &&
		p.ReturnTime == nil &&
		p.PassengerCount == nil &&
		p.PassengerNames == nil &&
		p.ContactName == nil &&
		p.ContactPhone == nil &&
		p.ContactEmail == nil &&
		p.VehicleType == nil &&
		p.SpecialRequirements == nil &&
		p.BudgetCents == nil &&
		p.Notes == nil
}

// assignments flattens the patch into (column, value) pairs in a fixed order.
func (p Patch) assignments() []assignment {
	var out []assignment
	add := func(col string, present bool, val any) {
		if present {
			out = append(out, assignment{column: col, value: val})
		}
	}
	add("title", p.Title != nil, deref(p.Title))
	add("category", p.Category != nil, derefCategory(p.Category))
	add("origin", p.Origin != nil, deref(p.Origin))
	add("destination", p.Destination != nil, deref(p.Destination))
	add("stops", p.Stops != nil, derefSlice(p.Stops))
	add("preferred_date", p.PreferredDate != nil, derefTime(p.PreferredDate))
	add("preferred_time", p.PreferredTime != nil, deref(p.PreferredTime))
	add("return_date", p.ReturnDate != nil, derefTime(p.ReturnDate))
	add("return_time", p.ReturnTime != nil, deref(p.ReturnTime))
	add("passenger_count", p.PassengerCount != nil, derefInt(p.PassengerCount))
	add("passenger_names", p.PassengerNames != nil, derefSlice(p.PassengerNames))
	add("contact_name", p.ContactName != nil, deref(p.ContactName))
	add("contact_phone", p.ContactPhone != nil, deref(p.ContactPhone))
	add("contact_email", p.ContactEmail != nil, deref(p.ContactEmail))
	add("vehicle_type", p.VehicleType != nil, deref(p.VehicleType))
	add("special_requirements", p.SpecialRequirements != nil, deref(p.SpecialRequirements))
	add("budget_cents", p.BudgetCents != nil, derefInt64(p.BudgetCents))
	add("notes", p.Notes != nil, deref(p.Notes))
	return out
}

type assignment struct {
	column string
	value  any
}

func deref(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefCategory(v *Category) any {
	if v == nil {
		return nil
	}
	return string(*v)
}

func derefSlice(v *[]string) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
