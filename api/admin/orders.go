package admin

import (
	"net/http"

	"caviste_server/handling"
	"caviste_server/lib"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// ListOrders returns a paginated list of orders, optionally filtered by status
func (ar *AdminRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := handling.ParseOrderFilter(r)
	if err != nil {
		handling.RespondError(err, "Invalid order filter", ar.logger, w)
		return
	}

	page, err := ar.orderService.ListOrders(r.Context(), filter)
	if err != nil {
		handling.HandleError(err, "Les commandes n'ont pas pu être chargées", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(page), gecho.Send())
}

func (ar *AdminRoutesManager) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	orderId, err := handling.ParseUUIDParam(r, "id")
	if err != nil {
		handling.RespondError(err, "Invalid order id", ar.logger, w)
		return
	}

	order, err := ar.orderService.GetOrder(r.Context(), orderId)
	if err != nil {
		handling.RespondError(err, "La commande n'a pas pu être chargée", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(order), gecho.Send())
}

func (ar *AdminRoutesManager) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderId, err := handling.ParseUUIDParam(r, "id")
	if err != nil {
		handling.RespondError(err, "Invalid order id", ar.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateOrderStatusRequest](r)
	if err != nil {
		handling.RespondError(err, "Invalid status update", ar.logger, w)
		return
	}

	order, err := ar.orderService.UpdateOrderStatus(r.Context(), orderId, tables.OrderStatus(body.Status))
	if err != nil {
		handling.RespondError(err, "Le statut n'a pas pu être modifié", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Statut mis à jour"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
