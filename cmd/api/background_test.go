package main

import (
	"errors"
	"sync"
	"testing"

	"storefront/internal/domain/orders"
	"storefront/internal/domain/users"
	"storefront/internal/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type sentMail struct {
	template, username, email string
	data                      any
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(templateFile, username, email string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{templateFile, username, email, data})
	return m.err
}

func TestSendOrderConfirmation(t *testing.T) {
	ta := newTestApplication(t)
	fm := &fakeMailer{}
	ta.mailer = fm

	u := &users.User{ID: userID, Name: "Ann", DisplayName: strPtr("Annie"), Email: "ann@example.com"}
	o := &orders.Order{ID: 9, OrderNumber: "ORD-ABCDEFGHJK"}

	ta.sendOrderConfirmation(u, o)
	ta.wg.Wait()

	require.Len(t, fm.sent, 1)
	assert.Equal(t, mailer.OrderConfirmationTemplate, fm.sent[0].template)
	assert.Equal(t, "Annie", fm.sent[0].username)
	assert.Equal(t, "ann@example.com", fm.sent[0].email)
	assert.Same(t, o, fm.sent[0].data)
}

func TestSendOrderConfirmationFailureIsLogged(t *testing.T) {
	ta := newTestApplication(t)
	core, logs := observer.New(zap.ErrorLevel)
	ta.logger = zap.New(core).Sugar()
	ta.mailer = &fakeMailer{err: errors.New("smtp down")}

	ta.sendOrderConfirmation(&users.User{ID: userID, Name: "Ann"}, &orders.Order{ID: 9})
	ta.wg.Wait()

	require.Equal(t, 1, logs.FilterMessage("order confirmation email failed").Len())
}

func TestSendOrderConfirmationWithoutMailer(t *testing.T) {
	ta := newTestApplication(t)
	ta.sendOrderConfirmation(&users.User{ID: userID}, &orders.Order{ID: 9})
	ta.wg.Wait()
}

func TestBackgroundRecovers(t *testing.T) {
	ta := newTestApplication(t)
	core, logs := observer.New(zap.ErrorLevel)
	ta.logger = zap.New(core).Sugar()

	ta.background(func() { panic("boom") })
	ta.wg.Wait()

	assert.Equal(t, 1, logs.FilterMessage("background task panicked").Len())
}
