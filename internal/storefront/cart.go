package storefront

import (
	"encoding/json"
	"net/http"

	"github.com/warungpos/storefront/internal/cart"
	"github.com/warungpos/storefront/internal/checkout"
)

type cartView struct {
	Items     []cart.Line `json:"items"`
	ItemCount int         `json:"itemCount"`
	checkout.Totals
}

func viewOf(c *cart.Cart) cartView {
	lines := c.Lines()
	return cartView{
		Items:     lines,
		ItemCount: c.ItemCount(),
		Totals:    checkout.PriceLines(lines),
	}
}

func (h *Handler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)
	h.writeJSON(w, http.StatusOK, viewOf(h.carts.Cart(token)))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

// HandleAddItem adds one unit of a product, snapshotting its current name,
// price and image into the line.
func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ensureCatalog(r); err != nil {
		h.logger.Error("failed to load menu", "error", err)
		h.writeError(w, http.StatusBadGateway, "Gagal memuat menu")
		return
	}

	product, ok := h.catalog.Product(req.ProductID)
	if !ok {
		h.writeError(w, http.StatusNotFound, "Produk tidak ditemukan")
		return
	}
	if !product.Available {
		h.writeError(w, http.StatusConflict, "Produk sedang tidak tersedia")
		return
	}

	c := h.carts.Cart(token)
	c.AddLine(cart.Snapshot{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
	})

	h.logger.Info("cart item added", "product_id", product.ID, "session", token)
	h.writeJSON(w, http.StatusOK, viewOf(c))
}

// HandleRemoveItem removes one unit; the last unit removes the line. Unknown
// ids are a no-op, not an error.
func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)

	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	c := h.carts.Cart(token)
	c.RemoveLine(productID)

	h.writeJSON(w, http.StatusOK, viewOf(c))
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleSetQuantity sets an existing line's quantity; zero or less removes
// the line. Setting a quantity for a product not in the cart does nothing.
func (h *Handler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)

	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := h.carts.Cart(token)
	c.SetQuantity(productID, req.Quantity)

	h.writeJSON(w, http.StatusOK, viewOf(c))
}

type updateNoteRequest struct {
	Note string `json:"note"`
}

func (h *Handler) HandleUpdateNote(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)

	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := h.carts.Cart(token)
	c.UpdateNote(productID, req.Note)

	h.writeJSON(w, http.StatusOK, viewOf(c))
}

func (h *Handler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)

	c := h.carts.Cart(token)
	c.Clear()

	h.writeJSON(w, http.StatusOK, viewOf(c))
}
