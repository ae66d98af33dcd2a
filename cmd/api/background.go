package main

import (
	"fmt"

	"storefront/internal/domain/orders"
	"storefront/internal/domain/users"
	"storefront/internal/mailer"
)

// background runs fn outside the request. run waits for it on shutdown.
func (app *application) background(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Errorw("background task panicked", "error", fmt.Sprint(err))
			}
		}()
		fn()
	}()
}

func (app *application) sendOrderConfirmation(user *users.User, order *orders.Order) {
	if app.mailer == nil {
		return
	}
	app.background(func() {
		if err := app.mailer.Send(mailer.OrderConfirmationTemplate, user.ShownName(), user.Email, order); err != nil {
			app.logger.Errorw("order confirmation email failed", "order_id", order.ID, "error", err.Error())
			return
		}
		app.logger.Infow("order confirmation sent", "order_id", order.ID)
	})
}
