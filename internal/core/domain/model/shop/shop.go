// Package shop provides the Shop aggregate: the storefront context an order
// or registration belongs to. Shops carry string-keyed attributes and the
// identity data (code, name, URL) captured into notification messages.
package shop

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

const (
	// AttrAdminEmail is the attribute code holding the shop's sender address
	// for outgoing notification mail.
	AttrAdminEmail = "SHOP_ADMIN_EMAIL"

	// AttrMailTemplateThemes is the attribute code holding the shop's mail
	// template theme chain as a comma separated list, most specific first.
	AttrMailTemplateThemes = "SHOP_MAIL_TEMPLATE_THEMES"
)

// ErrShopIsNotConstructed is returned when a Shop instance was not created
// through the NewShop or RestoreShop factory methods.
var ErrShopIsNotConstructed = errors.New("Shop must be created via NewShop constructor")

// Shop represents a storefront.
type Shop struct {
	// id is the unique identifier for the shop
	id kernel.UUID

	// code is the unique business identifier (e.g. "SHOP10")
	code string

	// name is the display name used in correspondence
	name string

	// defaultURL is the shop's canonical storefront URL
	defaultURL string

	// attributes are string-keyed configuration values looked up by code
	attributes map[string]string

	// isConstructed ensures the shop was created via a constructor
	isConstructed bool
}

// NewShop creates a new Shop with no attributes.
func NewShop(id kernel.UUID, code, name, defaultURL string) (*Shop, error) {
	s := &Shop{
		attributes:    make(map[string]string),
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setCode(code),
		s.setName(name),
	); err != nil {
		return nil, err
	}

	s.defaultURL = defaultURL
	return s, nil
}

// RestoreShop reconstructs a Shop from persistence, including its attributes.
func RestoreShop(id kernel.UUID, code, name, defaultURL string, attributes map[string]string) (*Shop, error) {
	s, err := NewShop(id, code, name, defaultURL)
	if err != nil {
		return nil, err
	}
	for k, v := range attributes {
		s.attributes[k] = v
	}
	return s, nil
}

// Validate ensures the Shop instance was properly constructed.
func (s *Shop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShopIsNotConstructed
	}
	return nil
}

// ID returns the shop's unique identifier.
func (s *Shop) ID() kernel.UUID {
	return s.id
}

// Code returns the shop's business identifier.
func (s *Shop) Code() string {
	return s.code
}

// Name returns the shop's display name.
func (s *Shop) Name() string {
	return s.name
}

// DefaultURL returns the shop's canonical storefront URL.
func (s *Shop) DefaultURL() string {
	return s.defaultURL
}

// Attribute returns the attribute value for the given code.
// The second return value reports whether the attribute exists.
func (s *Shop) Attribute(code string) (string, bool) {
	value, ok := s.attributes[code]
	return value, ok
}

// SetAttribute stores an attribute value under the given code.
func (s *Shop) SetAttribute(code, value string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("attribute code")
	}
	s.attributes[code] = value
	return nil
}

// Attributes returns a copy of the shop's attribute map.
func (s *Shop) Attributes() map[string]string {
	copied := make(map[string]string, len(s.attributes))
	for k, v := range s.attributes {
		copied[k] = v
	}
	return copied
}

func (s *Shop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shop) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("shop code")
	}
	s.code = code
	return nil
}

func (s *Shop) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("shop name")
	}
	s.name = name
	return nil
}
