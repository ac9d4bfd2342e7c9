package profile

import (
	"fmt"
)

// FindUnique returns the only descendant of root matching sel. ok is false when
// nothing matches, more than one match is an ErrAmbiguousFragment.
func FindUnique(root Node, sel Selector) (node Node, ok bool, err error) {
	matches := root.Select(sel)
	switch len(matches) {
	case 0:
		return nil, false, nil
	case 1:
		return matches[0], true, nil
	}
	return nil, false, fmt.Errorf("%w: %d elements match %s", ErrAmbiguousFragment, len(matches), sel)
}

// Dropdown maps the label of each option of a dropdown to its category id.
type Dropdown = Ordered[string]

// IndexDropdown reads the options of the select tagged with groupId. A missing
// select yields an empty Dropdown, some profiles leave dropdowns out entirely.
func IndexDropdown(root Node, groupId string) (Dropdown, error) {
	var dropdown Dropdown

	control, ok, err := FindUnique(root, ByAttr("select", "data-group-id", groupId))
	if err != nil {
		return dropdown, fmt.Errorf("dropdown %q: %w", groupId, err)
	}
	if !ok {
		return dropdown, nil
	}

	for _, option := range control.Select(ByTag("option")) {
		label := option.Text()
		categoryId, ok := option.Attr("value")
		if !ok {
			return Dropdown{}, fmt.Errorf(
				"%w: option %q of dropdown %q has no value",
				ErrStructuralParse, label, groupId,
			)
		}
		if label == "" {
			return Dropdown{}, fmt.Errorf(
				"%w: option %q of dropdown %q has no label",
				ErrStructuralParse, categoryId, groupId,
			)
		}
		dropdown.Set(label, categoryId)
	}
	return dropdown, nil
}
