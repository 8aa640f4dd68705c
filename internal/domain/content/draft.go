package content

// Draft is the admin panel's editable copy of the content.
// Every mutation replaces the touched slices instead of writing through them,
// so a Content obtained earlier from Snapshot never changes underneath its holder.
// INVARIANT: index-based operations never panic; out-of-range indexes return ErrIndexOutOfRange
// and leave the draft untouched.
type Draft struct {
	contacts Contact
	sports   []Sport
}

// NewDraft starts a draft from the given content.
// PRE: none
// POST: draft holds a deep copy of c
func NewDraft(c Content) *Draft {
	cp := c.Clone()
	return &Draft{contacts: cp.Contacts, sports: cp.Sports}
}

// Snapshot returns a deep copy of the current draft state.
// INVARIANT: Draft is not mutated
func (d *Draft) Snapshot() Content {
	return Content{Contacts: d.contacts, Sports: d.sports}.Clone()
}

// Contacts returns the draft contacts.
func (d *Draft) Contacts() Contact {
	return d.contacts
}

// Sports returns a deep copy of the draft sports.
func (d *Draft) Sports() []Sport {
	return d.Snapshot().Sports
}

// ReplaceContacts overwrites the contacts draft as a whole.
func (d *Draft) ReplaceContacts(c Contact) {
	d.contacts = c
}

// UpdateContactField merges a single field into the contacts draft.
// Empty strings are permitted.
// PRE: field is one of address, phone, email, hours
// POST: only the named field changes
func (d *Draft) UpdateContactField(field, value string) error {
	c := d.contacts
	switch field {
	case FieldAddress:
		c.Address = value
	case FieldPhone:
		c.Phone = value
	case FieldEmail:
		c.Email = value
	case FieldHours:
		c.Hours = value
	default:
		return ErrUnknownField
	}
	d.contacts = c
	return nil
}

// UpdateSportField sets name, image or video of the sport at index.
// PRE: 0 <= index < len(sports); field is one of name, image, video
// POST: only the named field of that sport changes
func (d *Draft) UpdateSportField(index int, field, value string) error {
	return d.mutateSport(index, func(s *Sport) error {
		switch field {
		case FieldName:
			s.Name = value
		case FieldImage:
			s.Image = value
		case FieldVideo:
			s.Video = value
		default:
			return ErrUnknownField
		}
		return nil
	})
}

// UpdateRule replaces the rule at subIndex of the sport at index.
func (d *Draft) UpdateRule(index, subIndex int, value string) error {
	return d.mutateSport(index, func(s *Sport) error {
		out, err := setAt(s.Rules, subIndex, value)
		if err != nil {
			return err
		}
		s.Rules = out
		return nil
	})
}

// UpdateSafety replaces the safety item at subIndex of the sport at index.
func (d *Draft) UpdateSafety(index, subIndex int, value string) error {
	return d.mutateSport(index, func(s *Sport) error {
		out, err := setAt(s.Safety, subIndex, value)
		if err != nil {
			return err
		}
		s.Safety = out
		return nil
	})
}

// AddRule appends a placeholder rule to the sport at index.
// POST: len(rules) grows by one; existing rules keep their order
func (d *Draft) AddRule(index int) error {
	return d.mutateSport(index, func(s *Sport) error {
		s.Rules = append(cloneStrings(s.Rules), NewRulePlaceholder)
		return nil
	})
}

// AddSafety appends a placeholder safety item to the sport at index.
func (d *Draft) AddSafety(index int) error {
	return d.mutateSport(index, func(s *Sport) error {
		s.Safety = append(cloneStrings(s.Safety), NewSafetyPlaceholder)
		return nil
	})
}

// RemoveRule deletes the rule at subIndex of the sport at index.
// POST: len(rules) shrinks by one; remaining rules keep their relative order
func (d *Draft) RemoveRule(index, subIndex int) error {
	return d.mutateSport(index, func(s *Sport) error {
		out, err := removeAt(s.Rules, subIndex)
		if err != nil {
			return err
		}
		s.Rules = out
		return nil
	})
}

// RemoveSafety deletes the safety item at subIndex of the sport at index.
func (d *Draft) RemoveSafety(index, subIndex int) error {
	return d.mutateSport(index, func(s *Sport) error {
		out, err := removeAt(s.Safety, subIndex)
		if err != nil {
			return err
		}
		s.Safety = out
		return nil
	})
}

// mutateSport applies fn to a copy of the sport at index and swaps it in only if fn succeeds.
func (d *Draft) mutateSport(index int, fn func(s *Sport) error) error {
	if index < 0 || index >= len(d.sports) {
		return ErrIndexOutOfRange
	}
	s := d.sports[index].Clone()
	if err := fn(&s); err != nil {
		return err
	}
	updated := make([]Sport, len(d.sports))
	copy(updated, d.sports)
	updated[index] = s
	d.sports = updated
	return nil
}

func setAt(list []string, i int, value string) ([]string, error) {
	if i < 0 || i >= len(list) {
		return nil, ErrIndexOutOfRange
	}
	out := cloneStrings(list)
	out[i] = value
	return out, nil
}

func removeAt(list []string, i int) ([]string, error) {
	if i < 0 || i >= len(list) {
		return nil, ErrIndexOutOfRange
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out, nil
}
