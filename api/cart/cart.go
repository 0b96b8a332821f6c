package cart

import (
	"net/http"

	"caviste_server/handling"
	"caviste_server/lib"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (crm *CartRoutesManager) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := crm.cartService.View(r.Context(), crm.cartService.Items(r))
	if err != nil {
		handling.HandleError(err, "Le panier n'a pas pu être chargé", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(view), gecho.Send())
}

func (crm *CartRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CartItemRequest](r)
	if err != nil {
		handling.RespondError(err, "Invalid cart item", crm.logger, w)
		return
	}

	view, err := crm.cartService.AddItem(w, r, body.ProductId, body.Quantity)
	if err != nil {
		handling.RespondError(err, "Le panier n'a pas pu être mis à jour", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(view), gecho.Send())
}

func (crm *CartRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	view, err := crm.cartService.RemoveItem(w, r, chi.URLParam(r, "productId"))
	if err != nil {
		handling.HandleError(err, "Le panier n'a pas pu être mis à jour", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(view), gecho.Send())
}

func (crm *CartRoutesManager) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := crm.cartService.Clear(w, r); err != nil {
		handling.HandleError(err, "Le panier n'a pas pu être vidé", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithMessage("Panier vidé"), gecho.Send())
}
