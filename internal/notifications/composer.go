package notifications

import (
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"orderflow/internal/pkg/errs"
)

// Mail is a composed message ready for transport.
type Mail struct {
	From    string
	To      string
	Subject string
	Body    string
}

// MailComposer renders mail templates. A template is a file
// <templatesDir>/<theme>/<name>.tmpl defining the named templates "subject"
// and "body". The message's theme chain is walked in order and the first
// theme carrying the file wins, so shop-specific themes override the default.
type MailComposer struct {
	templatesDir string
}

// NewMailComposer creates a composer reading templates from the given root
// directory.
func NewMailComposer(templatesDir string) (MailComposer, error) {
	if templatesDir == "" {
		return MailComposer{}, errs.NewValueIsRequiredError("templatesDir")
	}
	return MailComposer{templatesDir: templatesDir}, nil
}

// ComposeRegistration renders a registration or password reset mail.
func (c MailComposer) ComposeRegistration(msg RegistrationMessage) (Mail, error) {
	if err := msg.Validate(); err != nil {
		return Mail{}, err
	}

	data := map[string]any{
		"FirstName":  msg.FirstName(),
		"Locale":     msg.Locale(),
		"ShopCode":   msg.ShopCode(),
		"ShopName":   msg.ShopName(),
		"ShopURL":    msg.ShopURL(),
		"Passphrase": msg.Passphrase(),
	}

	return c.compose(msg.Template(), msg.ThemeChain(), msg.MailFrom(), msg.To(), data)
}

// ComposeOrderStatus renders an order lifecycle mail.
func (c MailComposer) ComposeOrderStatus(msg OrderStatusMessage) (Mail, error) {
	if err := msg.Validate(); err != nil {
		return Mail{}, err
	}

	data := map[string]any{
		"FirstName":      msg.FirstName(),
		"Locale":         msg.Locale(),
		"ShopCode":       msg.ShopCode(),
		"ShopName":       msg.ShopName(),
		"ShopURL":        msg.ShopURL(),
		"OrderNumber":    msg.OrderNumber(),
		"OrderStatus":    msg.OrderStatus(),
		"DeliveryNumber": msg.DeliveryNumber(),
		"Params":         msg.Params(),
	}

	return c.compose(msg.Template(), msg.ThemeChain(), msg.MailFrom(), msg.To(), data)
}

func (c MailComposer) compose(name string, themeChain []string, from, to string, data map[string]any) (Mail, error) {
	path, err := c.resolve(name, themeChain)
	if err != nil {
		return Mail{}, err
	}

	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return Mail{}, errs.NewValueIsInvalidErrorWithCause("template "+name, err)
	}

	subject, err := render(tmpl, "subject", data)
	if err != nil {
		return Mail{}, err
	}
	body, err := render(tmpl, "body", data)
	if err != nil {
		return Mail{}, err
	}

	return Mail{
		From:    from,
		To:      to,
		Subject: strings.TrimSpace(subject),
		Body:    body,
	}, nil
}

// resolve walks the theme chain and returns the first existing template file.
func (c MailComposer) resolve(name string, themeChain []string) (string, error) {
	for _, theme := range themeChain {
		path := filepath.Join(c.templatesDir, theme, name+".tmpl")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errs.NewObjectNotFoundError("template", name)
}

func render(tmpl *template.Template, section string, data map[string]any) (string, error) {
	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, section, data); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("template section "+section, err)
	}
	return sb.String(), nil
}
