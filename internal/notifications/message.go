package notifications

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	// ErrRegistrationMessageIsNotConstructed is returned when a
	// RegistrationMessage was not created via its constructor.
	ErrRegistrationMessageIsNotConstructed = errors.New(
		"RegistrationMessage must be created via NewRegistrationMessage constructor")

	// ErrOrderStatusMessageIsNotConstructed is returned when an
	// OrderStatusMessage was not created via its constructor.
	ErrOrderStatusMessageIsNotConstructed = errors.New(
		"OrderStatusMessage must be created via NewOrderStatusMessage constructor")
)

// RegistrationMessage is an immutable snapshot of everything needed to compose
// and send a registration or password reset mail. It is built while the
// producer still holds the customer and shop, so the send task carries no
// references to live aggregates.
type RegistrationMessage struct {
	to         string
	firstName  string
	locale     string
	template   string
	mailFrom   string
	shopCode   string
	shopName   string
	shopURL    string
	themeChain []string
	passphrase string

	guard guard.ConstructorGuard
}

// NewRegistrationMessage creates a validated registration message.
func NewRegistrationMessage(
	to, firstName, locale, template, mailFrom string,
	shopCode, shopName, shopURL string,
	themeChain []string,
	passphrase string,
) (RegistrationMessage, error) {
	if to == "" {
		return RegistrationMessage{}, errs.NewValueIsRequiredError("to")
	}
	if template == "" {
		return RegistrationMessage{}, errs.NewValueIsRequiredError("template")
	}
	if mailFrom == "" {
		return RegistrationMessage{}, errs.NewValueIsRequiredError("mailFrom")
	}

	chain := make([]string, len(themeChain))
	copy(chain, themeChain)

	return RegistrationMessage{
		to:         to,
		firstName:  firstName,
		locale:     locale,
		template:   template,
		mailFrom:   mailFrom,
		shopCode:   shopCode,
		shopName:   shopName,
		shopURL:    shopURL,
		themeChain: chain,
		passphrase: passphrase,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the message was created via its constructor.
func (m RegistrationMessage) Validate() error {
	return m.guard.Validate(ErrRegistrationMessageIsNotConstructed)
}

// To returns the recipient address.
func (m RegistrationMessage) To() string { return m.to }

// FirstName returns the recipient's first name for the salutation.
func (m RegistrationMessage) FirstName() string { return m.firstName }

// Locale returns the recipient's locale.
func (m RegistrationMessage) Locale() string { return m.locale }

// Template returns the mail template name.
func (m RegistrationMessage) Template() string { return m.template }

// MailFrom returns the sender address captured from the shop.
func (m RegistrationMessage) MailFrom() string { return m.mailFrom }

// ShopCode returns the shop code.
func (m RegistrationMessage) ShopCode() string { return m.shopCode }

// ShopName returns the shop display name.
func (m RegistrationMessage) ShopName() string { return m.shopName }

// ShopURL returns the shop's default URL.
func (m RegistrationMessage) ShopURL() string { return m.shopURL }

// ThemeChain returns a copy of the template lookup chain.
func (m RegistrationMessage) ThemeChain() []string {
	chain := make([]string, len(m.themeChain))
	copy(chain, m.themeChain)
	return chain
}

// Passphrase returns the generated plaintext passphrase.
func (m RegistrationMessage) Passphrase() string { return m.passphrase }

// OrderStatusMessage is an immutable snapshot for an order lifecycle mail.
type OrderStatusMessage struct {
	to             string
	firstName      string
	locale         string
	template       string
	mailFrom       string
	shopCode       string
	shopName       string
	shopURL        string
	themeChain     []string
	orderNumber    string
	orderStatus    string
	deliveryNumber string
	params         map[string]string

	guard guard.ConstructorGuard
}

// NewOrderStatusMessage creates a validated order status message.
func NewOrderStatusMessage(
	to, firstName, locale, template, mailFrom string,
	shopCode, shopName, shopURL string,
	themeChain []string,
	orderNumber, orderStatus, deliveryNumber string,
	params map[string]string,
) (OrderStatusMessage, error) {
	if to == "" {
		return OrderStatusMessage{}, errs.NewValueIsRequiredError("to")
	}
	if template == "" {
		return OrderStatusMessage{}, errs.NewValueIsRequiredError("template")
	}
	if mailFrom == "" {
		return OrderStatusMessage{}, errs.NewValueIsRequiredError("mailFrom")
	}
	if orderNumber == "" {
		return OrderStatusMessage{}, errs.NewValueIsRequiredError("orderNumber")
	}

	chain := make([]string, len(themeChain))
	copy(chain, themeChain)

	copied := make(map[string]string, len(params))
	for key, value := range params {
		copied[key] = value
	}

	return OrderStatusMessage{
		to:             to,
		firstName:      firstName,
		locale:         locale,
		template:       template,
		mailFrom:       mailFrom,
		shopCode:       shopCode,
		shopName:       shopName,
		shopURL:        shopURL,
		themeChain:     chain,
		orderNumber:    orderNumber,
		orderStatus:    orderStatus,
		deliveryNumber: deliveryNumber,
		params:         copied,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the message was created via its constructor.
func (m OrderStatusMessage) Validate() error {
	return m.guard.Validate(ErrOrderStatusMessageIsNotConstructed)
}

// To returns the recipient address.
func (m OrderStatusMessage) To() string { return m.to }

// FirstName returns the recipient's first name for the salutation.
func (m OrderStatusMessage) FirstName() string { return m.firstName }

// Locale returns the recipient's locale.
func (m OrderStatusMessage) Locale() string { return m.locale }

// Template returns the mail template name.
func (m OrderStatusMessage) Template() string { return m.template }

// MailFrom returns the sender address captured from the shop.
func (m OrderStatusMessage) MailFrom() string { return m.mailFrom }

// ShopCode returns the shop code.
func (m OrderStatusMessage) ShopCode() string { return m.shopCode }

// ShopName returns the shop display name.
func (m OrderStatusMessage) ShopName() string { return m.shopName }

// ShopURL returns the shop's default URL.
func (m OrderStatusMessage) ShopURL() string { return m.shopURL }

// ThemeChain returns a copy of the template lookup chain.
func (m OrderStatusMessage) ThemeChain() []string {
	chain := make([]string, len(m.themeChain))
	copy(chain, m.themeChain)
	return chain
}

// OrderNumber returns the order the message is about.
func (m OrderStatusMessage) OrderNumber() string { return m.orderNumber }

// OrderStatus returns the order status after the transition.
func (m OrderStatusMessage) OrderStatus() string { return m.orderStatus }

// DeliveryNumber returns the delivery the message is about, if any.
func (m OrderStatusMessage) DeliveryNumber() string { return m.deliveryNumber }

// Params returns a copy of the transition parameters.
func (m OrderStatusMessage) Params() map[string]string {
	copied := make(map[string]string, len(m.params))
	for key, value := range m.params {
		copied[key] = value
	}
	return copied
}
