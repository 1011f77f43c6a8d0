package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contact-book/internal/domain"
	"contact-book/internal/service"
	"contact-book/internal/transport/http/response"
)

type ContactHandler struct {
	contacts *service.ContactService
	transfer *service.TransferService
	mail     *service.MailService
	log      *zap.Logger
}

func NewContactHandler(contacts *service.ContactService, transfer *service.TransferService, mail *service.MailService, l *zap.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, transfer: transfer, mail: mail, log: l}
}

func (h *ContactHandler) Register(r gin.IRouter) {
	r.GET("/contacts", h.List)
	r.POST("/contacts", h.Create)
	r.PUT("/contacts/:id", h.Update)
	r.DELETE("/contacts/:id", h.Delete)
	r.POST("/contacts/import", h.Import)
	r.GET("/contacts/export/csv", h.ExportCSV)
	r.GET("/contacts/export/vcf", h.ExportVCF)
	r.POST("/send-email", h.SendEmail)
}

type contactIn struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

func (h *ContactHandler) List(c *gin.Context) {
	cs, err := h.contacts.List(c.Query("q"), c.Query("filter"))
	if err != nil {
		response.Err(c, h.log, err)
		return
	}
	if cs == nil {
		cs = []domain.Contact{}
	}
	c.JSON(http.StatusOK, cs)
}

func (h *ContactHandler) Create(c *gin.Context) {
	var in contactIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	ct, err := h.contacts.Create(in.Name, in.Number)
	if err != nil {
		response.Err(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, ct)
}

func (h *ContactHandler) Update(c *gin.Context) {
	var in contactIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	ct, err := h.contacts.Update(c.Param("id"), in.Name, in.Number)
	if err != nil {
		response.Err(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Param("id")); err != nil {
		response.Err(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContactHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer f.Close()

	n, err := h.transfer.Import(f)
	if err != nil {
		response.Err(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": n})
}

func (h *ContactHandler) ExportCSV(c *gin.Context) {
	b, err := h.transfer.ExportCSV()
	if err != nil {
		response.Err(c, h.log, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="contacts.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", b)
}

func (h *ContactHandler) ExportVCF(c *gin.Context) {
	b, err := h.transfer.ExportVCF()
	if err != nil {
		response.Err(c, h.log, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="contacts.vcf"`)
	c.Data(http.StatusOK, "text/vcard; charset=utf-8", b)
}

func (h *ContactHandler) SendEmail(c *gin.Context) {
	var in service.SendInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if err := h.mail.Send(in); err != nil {
		response.Err(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
