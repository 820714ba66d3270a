// Package httpapi exposes the account and ledger services over JSON/HTTP.
// Handlers do transport work only: parse parameters, call a service, shape
// the response. All policy lives in the services and in fieldset.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/ledgerkeep/internal/common"
	"github.com/dmitrijs2005/ledgerkeep/internal/fieldset"
	"github.com/dmitrijs2005/ledgerkeep/internal/httperr"
	"github.com/dmitrijs2005/ledgerkeep/internal/logging"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/auth"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/statements"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/transactions"
	"github.com/dmitrijs2005/ledgerkeep/internal/server/users"
)

// StatementExporter is what the statements route needs from the export
// service.
type StatementExporter interface {
	ExportForUser(ctx context.Context, userID int64) (*statements.Export, error)
}

type Handler struct {
	logger     logging.Logger
	users      *users.Service
	ledger     *transactions.Service
	statements StatementExporter
	admin      auth.Authorizer
}

func NewHandler(l logging.Logger, us *users.Service, ts *transactions.Service, se StatementExporter, admin auth.Authorizer) *Handler {
	return &Handler{
		logger:     l.With("module", "httpapi"),
		users:      us,
		ledger:     ts,
		statements: se,
		admin:      admin,
	}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ping", h.ping)

	r.POST("/users", h.requireAdmin, h.wrap(h.createUser))
	r.GET("/users/:id", h.wrap(h.getUser))
	r.PATCH("/users/:id", h.wrap(h.updateUser))
	r.GET("/users/:id/balance", h.wrap(h.getBalance))
	r.GET("/users/:id/approve", h.wrap(h.approve))
	r.GET("/users/:id/balances-by-merchant", h.wrap(h.balancesByMerchant))
	r.POST("/users/:id/statements", h.requireAdmin, h.wrap(h.exportStatement))

	r.GET("/transactions/by-user/:id", h.wrap(h.listTransactions))

	return r
}

// wrap adapts an error-returning handler. An httperr in the chain picks the
// status and becomes {"error": message}; anything else is logged and hidden
// behind a generic 500.
func (h *Handler) wrap(fn func(c *gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := fn(c)
		if err == nil {
			return
		}
		if e, ok := httperr.From(err); ok {
			c.JSON(e.Code, gin.H{"error": e.Message})
			return
		}
		h.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requireAdmin gates privileged routes behind the admin authorizer. The
// refusal message never says whether a token was present, wrong or stale.
func (h *Handler) requireAdmin(c *gin.Context) {
	if d := h.admin.Authorize(c.Request); !d.Allowed {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			gin.H{"error": "You are not authorized for this action."})
		return
	}
	c.Next()
}

func (h *Handler) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

type userResponse struct {
	UserID    int64     `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *users.User) userResponse {
	return userResponse{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Password:  "<redacted>",
		CreatedAt: u.CreatedAt,
	}
}

func (h *Handler) getUser(c *gin.Context) error {
	id, err := parsePathID(c, "user ID")
	if err != nil {
		return err
	}

	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return httperr.NotFound("User ID not found")
		}
		return err
	}

	c.JSON(http.StatusOK, toUserResponse(u))
	return nil
}

// readRecord reads the body as an order-preserving JSON object.
func readRecord(c *gin.Context) (*fieldset.Record, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	rec, err := fieldset.DecodeObject(body)
	if err != nil {
		return nil, httperr.BadRequest("Invalid JSON body")
	}
	return rec, nil
}

func (h *Handler) createUser(c *gin.Context) error {
	rec, err := readRecord(c)
	if err != nil {
		return err
	}

	parsed := fieldset.ParseRecord(rec, users.Fields)
	if errs := parsed.Errors(); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return nil
	}
	data, _ := parsed.OK()

	user, err := h.users.Register(c.Request.Context(), data)
	if err != nil {
		if errors.Is(err, common.ErrorEmailAlreadyRegistered) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Email already registered",
				"email": strings.ToLower(data["email"]),
			})
			return nil
		}
		return err
	}

	c.JSON(http.StatusCreated, gin.H{"userId": user.ID})
	return nil
}

func (h *Handler) updateUser(c *gin.Context) error {
	id, err := parsePathID(c, "user ID")
	if err != nil {
		return err
	}

	// Basic auth carries the current email and plaintext password. Sane
	// enough over https.
	cred, err := auth.ParseBasic(c.GetHeader("Authorization"))
	if err != nil {
		return err
	}

	_, err = h.users.VerifyCredentials(c.Request.Context(), cred.Username, id, cred.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			// Strictly the same answer each time.
			return httperr.Unauthorized("Invalid credentials")
		}
		return err
	}

	rec, err := readRecord(c)
	if err != nil {
		return err
	}

	parsed := fieldset.ParsePatch(rec, users.Fields)
	if errs := parsed.Errors(); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return nil
	}
	data, _ := parsed.OK()

	updated, err := h.users.Update(c.Request.Context(), id, data)
	if err != nil {
		return err
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
	return nil
}

func (h *Handler) getBalance(c *gin.Context) error {
	id, err := parsePathID(c, "user ID")
	if err != nil {
		return err
	}

	balance, err := h.ledger.Balance(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Could also return 200 and a zero balance.
			return httperr.NotFound("No balance known")
		}
		return err
	}

	// Balances can outgrow JSON numbers; always a string.
	c.JSON(http.StatusOK, gin.H{"balance": balance.String()})
	return nil
}

func (h *Handler) approve(c *gin.Context) error {
	id, err := parsePathID(c, "user ID")
	if err != nil {
		return err
	}

	// Reject bad amounts before any store access.
	amount, err := transactions.ParseAmount(c.Query("amount"))
	if err != nil {
		return httperr.BadRequest("Invalid amount")
	}

	approved, err := h.ledger.Approve(c.Request.Context(), id, amount)
	if err != nil {
		return err
	}

	c.JSON(http.StatusOK, gin.H{"approved": approved})
	return nil
}

type transactionResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	MerchantID    int64     `json:"merchantId"`
	AmountInCents string    `json:"amountInCents"`
	Timestamp     time.Time `json:"timestamp"`
}

type transactionListResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	HasMore      bool                  `json:"hasMore,omitempty"`
}

func (h *Handler) listTransactions(c *gin.Context) error {
	id, err := parsePathID(c, "user ID")
	if err != nil {
		return err
	}

	merchant, err := queryInt64(c, "merchant", "merchant ID")
	if err != nil {
		return err
	}
	before, err := queryTime(c, "before", "time before")
	if err != nil {
		return err
	}
	after, err := queryTime(c, "after", "time after")
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}

	page, err := h.ledger.ListByUser(c.Request.Context(), id, transactions.Filter{
		MerchantID: merchant,
		Before:     before,
		After:      after,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	resp := transactionListResponse{
		Transactions: make([]transactionResponse, 0, len(page.Items)),
		HasMore:      page.HasMore,
	}
	for _, t := range page.Items {
		resp.Transactions = append(resp.Transactions, transactionResponse{
			ID:            t.ID,
			UserID:        t.UserID,
			MerchantID:    t.MerchantID,
			AmountInCents: t.AmountInCents.String(),
			Timestamp:     t.Timestamp,
		})
	}

	c.JSON(http.StatusOK, resp)
	return nil
}

type merchantBalanceResponse struct {
	MerchantID int64  `json:"merchantId"`
	Balance    string `json:"balance"`
}

func (h *Handler) balancesByMerchant(c *gin.Context) error {
	id, err := parsePathID(c, "user ID")
	if err != nil {
		return err
	}

	rows, err := h.ledger.BalancesByMerchant(c.Request.Context(), id)
	if err != nil {
		return err
	}

	resp := make([]merchantBalanceResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, merchantBalanceResponse{
			MerchantID: row.MerchantID,
			Balance:    row.Balance.String(),
		})
	}

	c.JSON(http.StatusOK, resp)
	return nil
}

func (h *Handler) exportStatement(c *gin.Context) error {
	id, err := parsePathID(c, "user ID")
	if err != nil {
		return err
	}

	if _, err := h.users.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return httperr.NotFound("User ID not found")
		}
		return err
	}

	export, err := h.statements.ExportForUser(c.Request.Context(), id)
	if err != nil {
		return err
	}

	c.JSON(http.StatusOK, gin.H{"key": export.Key, "url": export.URL})
	return nil
}
