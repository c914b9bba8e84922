package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Burtinsaw/PROC-sub000/internal/domain"
	"github.com/Burtinsaw/PROC-sub000/internal/reporting"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type itemRequest struct {
	ItemID      string  `json:"itemId"`
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
}

type supplierRequest struct {
	SupplierID string `json:"supplierId"`
	Name       string `json:"name" binding:"required"`
}

type createRFQRequest struct {
	RFQNumber    string            `json:"rfqNumber" binding:"required"`
	Title        string            `json:"title"`
	BaseCurrency string            `json:"baseCurrency"`
	Items        []itemRequest     `json:"items" binding:"required,min=1"`
	Suppliers    []supplierRequest `json:"suppliers" binding:"required,min=1"`
}

func (s *Server) handleCreateRFQ(c *gin.Context) {
	var req createRFQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	baseCurrency := req.BaseCurrency
	if baseCurrency == "" {
		baseCurrency = s.baseCurrency
	}

	rfq := &domain.RFQ{
		RFQID:        uuid.NewString(),
		RFQNumber:    req.RFQNumber,
		Title:        req.Title,
		Status:       "sent",
		BaseCurrency: baseCurrency,
		CreatedAt:    time.Now().UnixMilli(),
	}
	for _, it := range req.Items {
		id := it.ItemID
		if id == "" {
			id = uuid.NewString()
		}
		rfq.Items = append(rfq.Items, domain.Item{
			ItemID:      id,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
		})
	}
	for _, sup := range req.Suppliers {
		id := sup.SupplierID
		if id == "" {
			id = uuid.NewString()
		}
		rfq.Suppliers = append(rfq.Suppliers, domain.Supplier{
			SupplierID: id,
			Name:       sup.Name,
		})
	}

	if err := s.rfqs.Insert(c.Request.Context(), rfq); err != nil {
		s.respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rfqResponse(rfq))
}

func (s *Server) handleGetRFQ(c *gin.Context) {
	rfq, err := s.rfqs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, rfqResponse(rfq))
}

type quoteRequest struct {
	QuoteID      string  `json:"quoteId"`
	SupplierID   string  `json:"supplierId" binding:"required"`
	ItemID       string  `json:"itemId" binding:"required"`
	UnitPrice    float64 `json:"unitPrice"`
	Currency     string  `json:"currency"`
	FxRateToBase float64 `json:"fxRateToBase"`
	LeadTimeDays int     `json:"deliveryTime"`
}

type submitQuotesRequest struct {
	Quotes []quoteRequest `json:"quotes" binding:"required,min=1"`
}

func (s *Server) handleSubmitQuotes(c *gin.Context) {
	rfqID := c.Param("id")

	var req submitQuotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	rfq, err := s.rfqs.GetByID(ctx, rfqID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	suppliers := make(map[string]struct{}, len(rfq.Suppliers))
	for _, sup := range rfq.Suppliers {
		suppliers[sup.SupplierID] = struct{}{}
	}
	items := make(map[string]struct{}, len(rfq.Items))
	for _, it := range rfq.Items {
		items[it.ItemID] = struct{}{}
	}

	now := time.Now().UnixMilli()
	quotes := make([]*domain.Quote, 0, len(req.Quotes))
	for _, q := range req.Quotes {
		if _, ok := suppliers[q.SupplierID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("supplier %s is not on this rfq", q.SupplierID)})
			return
		}
		if _, ok := items[q.ItemID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("item %s is not on this rfq", q.ItemID)})
			return
		}
		id := q.QuoteID
		if id == "" {
			id = uuid.NewString()
		}
		currency := q.Currency
		if currency == "" {
			currency = rfq.BaseCurrency
		}
		quotes = append(quotes, &domain.Quote{
			QuoteID:      id,
			RFQID:        rfqID,
			SupplierID:   q.SupplierID,
			ItemID:       q.ItemID,
			UnitPrice:    q.UnitPrice,
			Currency:     currency,
			FxRateToBase: q.FxRateToBase,
			LeadTimeDays: q.LeadTimeDays,
			CreatedAt:    now,
		})
	}

	if err := s.quotes.InsertBulk(ctx, quotes); err != nil {
		s.respondStoreError(c, err)
		return
	}

	if err := s.refreshSession(ctx, rfqID); err != nil {
		s.logger.Printf("refresh session: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{"inserted": len(quotes)})
}

func (s *Server) handleComparison(c *gin.Context) {
	rfqID := c.Param("id")
	ctx := c.Request.Context()

	sess, err := s.getSession(ctx, rfqID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	rfq, err := s.rfqs.GetByID(ctx, rfqID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, comparisonResponse(rfq, sess))
}

type preferencesRequest struct {
	PriceWeight        *int      `json:"priceWeight"`
	VisibleSupplierIDs *[]string `json:"visibleSupplierIds"`
}

func (s *Server) handleUpdatePreferences(c *gin.Context) {
	rfqID := c.Param("id")

	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := s.getSession(c.Request.Context(), rfqID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	if req.PriceWeight != nil {
		sess.SetPriceWeight(*req.PriceWeight)
	}
	if req.VisibleSupplierIDs != nil {
		sess.HideAll()
		for _, id := range *req.VisibleSupplierIDs {
			sess.ShowSupplier(id)
		}
	}
	sess.Flush()

	c.JSON(http.StatusOK, gin.H{
		"priceWeight":        sess.PriceWeight(),
		"visibleSupplierIds": sess.VisibleSupplierIDs(),
	})
}

type awardRequest struct {
	SupplierID string `json:"supplierId" binding:"required"`
}

func (s *Server) handleCommitAward(c *gin.Context) {
	rfqID := c.Param("id")
	ctx := c.Request.Context()

	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rfq, err := s.rfqs.GetByID(ctx, rfqID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	found := false
	for _, sup := range rfq.Suppliers {
		if sup.SupplierID == req.SupplierID {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("supplier %s is not on this rfq", req.SupplierID)})
		return
	}

	if err := s.rfqs.SetAwardedSupplier(ctx, rfqID, req.SupplierID); err != nil {
		s.respondStoreError(c, err)
		return
	}

	if sess, err := s.getSession(ctx, rfqID); err == nil {
		sess.SetCommittedAward(req.SupplierID)
	}

	c.JSON(http.StatusOK, gin.H{"rfqId": rfqID, "awardedSupplierId": req.SupplierID})
}

func (s *Server) handleExport(c *gin.Context) {
	rfqID := c.Param("id")
	ctx := c.Request.Context()

	sess, err := s.getSession(ctx, rfqID)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=comparison-%s.csv", rfqID))
		c.Data(http.StatusOK, "text/csv", []byte(sess.ExportCSV()))
	case "xlsx":
		f, err := sess.ExportWorkbook()
		if err != nil {
			s.logger.Printf("build workbook: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		defer f.Close()

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=comparison-%s.xlsx", rfqID))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if _, err := f.WriteTo(c.Writer); err != nil {
			s.logger.Printf("write workbook: %v", err)
		}
	case "md":
		rfq, err := s.rfqs.GetByID(ctx, rfqID)
		if err != nil {
			s.respondStoreError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/markdown", []byte(reporting.RenderMarkdown(rfq.RFQNumber, sess.Compute())))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown export format %q", format)})
	}
}

func (s *Server) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, storage.ErrDuplicateKey):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, storage.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	default:
		s.logger.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func dereferenceQuotes(quotes []*domain.Quote) []domain.Quote {
	out := make([]domain.Quote, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, *q)
	}
	return out
}
