package httpserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"mercadolibre-replica/internal/domain"
	"mercadolibre-replica/internal/service/catalog"
)

const defaultLimit = 50

type itemsHandler struct {
	catalog *catalog.Service
	logger  *log.Logger
}

func (h *itemsHandler) create(c *gin.Context) {
	var in catalog.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, domain.Invalidf("malformed request body: %v", err))
		return
	}
	p, err := h.catalog.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *itemsHandler) createBatch(c *gin.Context) {
	var ins []catalog.CreateInput
	if err := c.ShouldBindJSON(&ins); err != nil {
		writeError(c, domain.Invalidf("malformed request body: %v", err))
		return
	}
	products, err := h.catalog.CreateBatch(c.Request.Context(), ins)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, products)
}

func (h *itemsHandler) getByID(c *gin.Context) {
	p, err := h.catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *itemsHandler) list(c *gin.Context) {
	offset, limit, err := paginationParams(c)
	if err != nil {
		writeError(c, err)
		return
	}
	resp, err := h.catalog.List(c.Request.Context(), offset, limit, c.Query("sort"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *itemsHandler) search(c *gin.Context) {
	offset, limit, err := paginationParams(c)
	if err != nil {
		writeError(c, err)
		return
	}
	min, err := decimalQuery(c, "price_min")
	if err != nil {
		writeError(c, err)
		return
	}
	max, err := decimalQuery(c, "price_max")
	if err != nil {
		writeError(c, err)
		return
	}
	resp, err := h.catalog.AdvancedSearch(c.Request.Context(), catalog.SearchParams{
		Query:     c.Query("q"),
		Brand:     c.Query("brand"),
		MinPrice:  min,
		MaxPrice:  max,
		Condition: c.Query("condition"),
		Offset:    offset,
		Limit:     limit,
		SortBy:    c.Query("sort"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *itemsHandler) searchByTitle(c *gin.Context) {
	products, err := h.catalog.SearchByTitle(c.Request.Context(), c.Query("title"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *itemsHandler) searchByBrand(c *gin.Context) {
	products, err := h.catalog.SearchByBrand(c.Request.Context(), c.Param("brand"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *itemsHandler) searchByPriceRange(c *gin.Context) {
	min, err := decimalQuery(c, "min")
	if err != nil {
		writeError(c, err)
		return
	}
	max, err := decimalQuery(c, "max")
	if err != nil {
		writeError(c, err)
		return
	}
	products, err := h.catalog.SearchByPriceRange(c.Request.Context(), min, max, c.Query("currency"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *itemsHandler) update(c *gin.Context) {
	var in catalog.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, domain.Invalidf("malformed request body: %v", err))
		return
	}
	p, err := h.catalog.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *itemsHandler) updatePrice(c *gin.Context) {
	price, err := decimalQuery(c, "price")
	if err != nil {
		writeError(c, err)
		return
	}
	if price == nil {
		writeError(c, domain.Invalidf("price query parameter is required"))
		return
	}
	reason := c.DefaultQuery("reason", "manual update")
	p, err := h.catalog.UpdatePrice(c.Request.Context(), c.Param("id"), *price, reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *itemsHandler) updateStatus(c *gin.Context) {
	p, err := h.catalog.UpdateStatus(c.Request.Context(), c.Param("id"), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *itemsHandler) softDelete(c *gin.Context) {
	if err := h.catalog.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *itemsHandler) deleteBatch(c *gin.Context) {
	var ids []string
	if err := c.ShouldBindJSON(&ids); err != nil {
		writeError(c, domain.Invalidf("malformed request body: %v", err))
		return
	}
	result := h.catalog.DeleteBatch(c.Request.Context(), ids)
	c.JSON(http.StatusOK, result)
}

func (h *itemsHandler) statistics(c *gin.Context) {
	stats, err := h.catalog.Statistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *itemsHandler) sortOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.SortOptions())
}

func (h *itemsHandler) brands(c *gin.Context) {
	stats, err := h.catalog.Statistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.Brands)
}

func (h *itemsHandler) categories(c *gin.Context) {
	stats, err := h.catalog.Statistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.Categories)
}

func paginationParams(c *gin.Context) (offset, limit int, err error) {
	offset, err = intQuery(c, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err = intQuery(c, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	return offset, limit, nil
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Invalidf("%s must be an integer", name)
	}
	return v, nil
}

func decimalQuery(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.Invalidf("%s must be a decimal number", name)
	}
	return &v, nil
}
