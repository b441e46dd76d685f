package payement

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/store"
)

// AdminOrderHandler : back-office commandes
type AdminOrderHandler struct {
	Orders *store.OrderStore
}

func NewAdminOrderHandler(orders *store.OrderStore) *AdminOrderHandler {
	return &AdminOrderHandler{Orders: orders}
}

// 🟢 GET /api/admin/orders
func (h *AdminOrderHandler) ListAllOrders(c *gin.Context) {
	orders, err := h.Orders.ListAll(c.Request.Context())
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// 🟢 PATCH /api/admin/orders/:id/status
// Transitions autorisées uniquement : processing → shipped → delivered,
// annulation possible tant que la commande n'est pas livrée.
func (h *AdminOrderHandler) UpdateOrderStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut requis"})
		return
	}

	order, err := h.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	switch {
	case errors.Is(err, store.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + input.Status})
		return
	case errors.Is(err, store.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Transition de statut non autorisée"})
		return
	case errors.Is(err, store.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	case err != nil:
		log.Println("❌ Erreur mise à jour statut:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Mise à jour impossible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour", "order": order})
}
