package notifications_test

import (
	"testing"

	"orderflow/internal/notifications"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegistrationMailNotifier_SendsWelcomeMail(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "default", notifications.TemplateCustomerRegistered, testTemplate)

	composer, err := notifications.NewMailComposer(dir)
	require.NoError(t, err)

	dispatcher, err := notifications.NewDispatcher(1, 4, discardLogger())
	require.NoError(t, err)
	dispatcher.Start()

	sender := new(MockMailSender)
	themes := new(MockThemeResolver)

	notifier, err := notifications.NewRegistrationMailNotifier(dispatcher, composer, themes, sender, discardLogger())
	require.NoError(t, err)

	themes.On("Chain", "SHOP10").Return([]string{"default"}).Once()
	sender.On("Send", mock.Anything, mock.MatchedBy(func(mail notifications.Mail) bool {
		return mail.To == "mary@example.com" &&
			mail.Subject == "Welcome to Main Shop"
	})).Return(nil).Once()

	notifier.NotifyRegistration(createNotifierCustomer(t), createNotifierShop(t, true), "secret-phrase")

	dispatcher.Stop()

	sender.AssertExpectations(t)
	themes.AssertExpectations(t)
}

func TestRegistrationMailNotifier_SendsPasswordResetMail(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "default", notifications.TemplateCustomerPasswordReset,
		`{{define "subject"}}Your new passphrase{{end}}
{{define "body"}}<p>{{.Passphrase}}</p>{{end}}
`)

	composer, err := notifications.NewMailComposer(dir)
	require.NoError(t, err)

	dispatcher, err := notifications.NewDispatcher(1, 4, discardLogger())
	require.NoError(t, err)
	dispatcher.Start()

	sender := new(MockMailSender)
	themes := new(MockThemeResolver)

	notifier, err := notifications.NewRegistrationMailNotifier(dispatcher, composer, themes, sender, discardLogger())
	require.NoError(t, err)

	themes.On("Chain", "SHOP10").Return([]string{"default"}).Once()
	sender.On("Send", mock.Anything, mock.MatchedBy(func(mail notifications.Mail) bool {
		return mail.Subject == "Your new passphrase"
	})).Return(nil).Once()

	notifier.NotifyPasswordReset(createNotifierCustomer(t), createNotifierShop(t, true), "fresh-phrase")

	dispatcher.Stop()

	sender.AssertExpectations(t)
}

func TestRegistrationMailNotifier_ShopWithoutAdminEmail_SkipsSend(t *testing.T) {
	composer, err := notifications.NewMailComposer(t.TempDir())
	require.NoError(t, err)

	dispatcher, err := notifications.NewDispatcher(1, 4, discardLogger())
	require.NoError(t, err)
	dispatcher.Start()

	sender := new(MockMailSender)
	themes := new(MockThemeResolver)

	notifier, err := notifications.NewRegistrationMailNotifier(dispatcher, composer, themes, sender, discardLogger())
	require.NoError(t, err)

	notifier.NotifyRegistration(createNotifierCustomer(t), createNotifierShop(t, false), "secret-phrase")
	notifier.NotifyPasswordReset(createNotifierCustomer(t), nil, "secret-phrase")

	dispatcher.Stop()

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
