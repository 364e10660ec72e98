package record

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// Validation limits carried over from the historical rule set.
const (
	maxEntryNameLength = 255
	maxAddressLength   = 500
)

// phonePattern accepts an optional country code and common separators. The
// digit count is checked separately (7 to 15).
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s().-]*$`)

// Validate checks a candidate record payload against the full rule set and
// aggregates every violation. It is a pure function of the input and the
// supplied clock instant; no rule short-circuits another.
func Validate(input RecordInput, now time.Time) ValidationResult {
	var errs []FieldError
	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	validatePhone(input.PhoneNumber, add)

	if strings.TrimSpace(input.DateOfBirth) == "" {
		add("dateOfBirth", "date of birth is required")
	} else if _, ok := parseDate(input.DateOfBirth); !ok {
		add("dateOfBirth", "date of birth must be a valid calendar date")
	}

	address := strings.TrimSpace(input.Address)
	switch {
	case address == "":
		add("address", "address is required")
	case !govalidator.StringLength(address, "1", fmt.Sprint(maxAddressLength)):
		add("address", fmt.Sprintf("address must not exceed %d characters", maxAddressLength))
	}

	// The future-date rule applies only to the top-level diagnosis date,
	// not to per-item dates.
	if input.DiagnosisDate != nil {
		if d, ok := parseDate(*input.DiagnosisDate); !ok {
			add("diagnosisDate", "diagnosis date must be a valid calendar date")
		} else if d.After(now) {
			add("diagnosisDate", "diagnosis date cannot be in the future")
		}
	}

	validateCategory("diseaseFlag", "diseases", input.DiseaseFlag,
		conditionItems(input.Diseases), "startDate", add)
	validateCategory("medicationFlag", "medications", input.MedicationFlag,
		conditionItems(input.Medications), "startDate", add)
	validateCategory("surgeryFlag", "surgeries", input.SurgeryFlag,
		surgeryItems(input.Surgeries), "date", add)

	return ValidationResult{OK: len(errs) == 0, Errors: errs}
}

func validatePhone(phone string, add func(field, message string)) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		add("phoneNumber", "phone number is required")
		return
	}
	if !phonePattern.MatchString(phone) {
		add("phoneNumber", "phone number contains invalid characters")
		return
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 || digits > 15 {
		add("phoneNumber", "phone number must contain between 7 and 15 digits")
	}
}

// categoryItem is the category-agnostic view the validator works on.
type categoryItem struct {
	name string
	date *string
}

func conditionItems(entries []ConditionEntry) []categoryItem {
	items := make([]categoryItem, len(entries))
	for i, e := range entries {
		items[i] = categoryItem{name: e.Name, date: e.StartDate}
	}
	return items
}

func surgeryItems(entries []SurgeryEntry) []categoryItem {
	items := make([]categoryItem, len(entries))
	for i, e := range entries {
		items[i] = categoryItem{name: e.Name, date: e.Date}
	}
	return items
}

// validateCategory applies the gate/list consistency rules for one category.
// A false gate means the list is ignored entirely; the transformer later
// normalizes any stray content to empty.
func validateCategory(flagField, listField string, gate *bool, items []categoryItem, dateField string, add func(field, message string)) {
	if gate == nil {
		add(flagField, flagField+" is required")
		return
	}
	if !*gate {
		return
	}

	if len(items) == 0 {
		add(listField, listField+" must not be empty when "+flagField+" is true")
		return
	}

	for i, item := range items {
		name := strings.TrimSpace(item.name)
		switch {
		case name == "":
			add(fmt.Sprintf("%s[%d].name", listField, i), "name is required")
		case !govalidator.StringLength(name, "1", fmt.Sprint(maxEntryNameLength)):
			add(fmt.Sprintf("%s[%d].name", listField, i),
				fmt.Sprintf("name must not exceed %d characters", maxEntryNameLength))
		}
		if item.date != nil && *item.date != "" {
			if _, ok := parseDate(*item.date); !ok {
				add(fmt.Sprintf("%s[%d].%s", listField, i, dateField),
					"must be a valid calendar date")
			}
		}
	}
}

// parseDate accepts the ISO-8601 calendar date forms the wire uses.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
