package orders

import (
	"net/http"

	"caviste_server/handling"
	"caviste_server/lib"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
)

// Checkout turns the session cart into a pending order and empties the cart.
func (orm *OrderRoutesManager) Checkout(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	if err != nil {
		handling.RespondError(err, "Invalid checkout request", orm.logger, w)
		return
	}

	cart, err := orm.cartService.View(r.Context(), orm.cartService.Items(r))
	if err != nil {
		handling.HandleError(err, "Le panier n'a pas pu être chargé", orm.logger, w)
		return
	}

	order, err := orm.checkoutService.Checkout(r.Context(), body, cart)
	if err != nil {
		handling.RespondError(err, "La commande n'a pas pu être enregistrée", orm.logger, w)
		return
	}

	if err := orm.cartService.Clear(w, r); err != nil {
		orm.logger.Warn("Failed to clear cart after checkout",
			gecho.Field("order_id", order.Id),
			gecho.Field("error", err),
		)
	}

	gecho.Success(w,
		gecho.WithMessage("Commande enregistrée"),
		gecho.WithData(structs.OrderResult{
			Success:     true,
			OrderId:     order.Id.String(),
			OrderNumber: order.OrderNumber,
		}),
		gecho.Send(),
	)
}
