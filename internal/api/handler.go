package api

import (
	"net/http"

	"ecpass/app"
	"ecpass/domain/core"
	"ecpass/domain/formula"
	"ecpass/internal/config"
	apperrors "ecpass/internal/errors"
	"ecpass/internal/quality"
	"ecpass/ports"

	"github.com/gin-gonic/gin"
)

// maxBatchItems bounds a single batch request
const maxBatchItems = 100

// PasswordHandler serves password generation endpoints
type PasswordHandler struct {
	cfg      config.GeneratorConfig
	observer ports.PipelineObserver
}

// NewPasswordHandler creates a handler using cfg for defaults and limits
func NewPasswordHandler(cfg config.GeneratorConfig, observer ports.PipelineObserver) *PasswordHandler {
	return &PasswordHandler{cfg: cfg, observer: observer}
}

// ListFormulas returns every registered formula
func (h *PasswordHandler) ListFormulas(c *gin.Context) {
	all := formula.All()
	out := make([]FormulaInfo, 0, len(all))
	for _, f := range all {
		out = append(out, FormulaInfo{
			Name:        f.Name,
			Description: f.Description,
			Default:     f.Name == h.cfg.Formula,
		})
	}
	c.JSON(http.StatusOK, gin.H{"formulas": out})
}

// Generate creates one password
func (h *PasswordHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("request body must be JSON with a memorable field"))
		return
	}

	name, svc, err := h.service(req.Formula)
	if err != nil {
		respondError(c, err)
		return
	}
	length, err := h.validate(req)
	if err != nil {
		respondError(c, err)
		return
	}

	pw, err := svc.GeneratePassword(req.Memorable, length)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Password:    pw,
		Length:      len(pw),
		Formula:     name,
		Fingerprint: core.Fingerprint(pw).String(),
	})
}

// Quality generates a password and returns only its quality report
func (h *PasswordHandler) Quality(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("request body must be JSON with a memorable field"))
		return
	}

	name, svc, err := h.service(req.Formula)
	if err != nil {
		respondError(c, err)
		return
	}
	length, err := h.validate(req)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := svc.Generate(req.Memorable, length)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, QualityResponse{
		Length:      res.Length(),
		Formula:     name,
		Fingerprint: core.Fingerprint(res.Password).String(),
		Report:      quality.Analyze(res),
	})
}

// Batch generates several passwords concurrently
func (h *PasswordHandler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("request body must be JSON with an items array"))
		return
	}
	if len(req.Items) == 0 || len(req.Items) > maxBatchItems {
		respondError(c, apperrors.InvalidInput("items must contain between 1 and 100 entries"))
		return
	}

	name, svc, err := h.service(req.Formula)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]BatchItem, len(req.Items))
	var jobs []app.BatchRequest
	var jobIndex []int
	for i, item := range req.Items {
		length, err := h.validate(item)
		if err != nil {
			items[i] = batchError(i, err)
			continue
		}
		jobs = append(jobs, app.BatchRequest{Memorable: item.Memorable, Length: length})
		jobIndex = append(jobIndex, i)
	}

	results, err := app.NewBatchService(svc, h.cfg.BatchConcurrency).GenerateMany(c.Request.Context(), jobs)
	if err != nil {
		respondError(c, apperrors.Wrap(err, "batch interrupted"))
		return
	}
	for k, res := range results {
		i := jobIndex[k]
		if res.Err != nil {
			items[i] = batchError(i, res.Err)
			continue
		}
		items[i] = BatchItem{
			Index:       i,
			Password:    res.Password,
			Fingerprint: core.Fingerprint(res.Password).String(),
		}
	}

	c.JSON(http.StatusOK, BatchResponse{Formula: name, Items: items})
}

func (h *PasswordHandler) service(name string) (string, *app.PasswordService, error) {
	if name == "" {
		name = h.cfg.Formula
	}
	svc, err := app.NewPasswordServiceForFormula(name, h.observer)
	if err != nil {
		return "", nil, err
	}
	return name, svc, nil
}

func (h *PasswordHandler) validate(req GenerateRequest) (int, error) {
	return h.cfg.ResolveRequest(req.Memorable, req.Length)
}

func batchError(index int, err error) BatchItem {
	err = apperrors.FromDomain(err)
	return BatchItem{Index: index, Error: err.Error(), Code: apperrors.GetCode(err)}
}

func respondError(c *gin.Context, err error) {
	err = apperrors.FromDomain(err)
	code := apperrors.GetCode(err)

	status := http.StatusInternalServerError
	if apperrors.IsClientError(code) {
		status = http.StatusBadRequest
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		RequestID: c.GetString(requestIDKey),
	})
}
