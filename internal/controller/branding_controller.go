package controller

import (
	"strings"

	"quest_nos_backend/internal/model"
	"quest_nos_backend/internal/service"
	"quest_nos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BrandingController struct {
	BrandingService *service.BrandingService
}

func NewBrandingController(brandingService *service.BrandingService) *BrandingController {
	return &BrandingController{BrandingService: brandingService}
}

// Current godoc
// @Summary Active branding
// @Description Returns the active white-label configuration, falling back to the configured defaults
// @Tags branding
// @Produce json
// @Success 200 {object} util.Response{data=model.ClientBranding}
// @Router /api/branding [get]
func (c *BrandingController) Current(ctx *gin.Context) {
	branding, err := c.BrandingService.Current(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"branding": branding,
		"features": branding.Features().Names(),
	})
}

// BrandingRequest carries a full white-label configuration to activate.
type BrandingRequest struct {
	CompanyName      string   `json:"companyName" binding:"required"`
	Tagline          string   `json:"tagline"`
	Description      string   `json:"description"`
	LogoURL          string   `json:"logoUrl"`
	FaviconURL       string   `json:"faviconUrl"`
	PrimaryColor     string   `json:"primaryColor" binding:"required"`
	SecondaryColor   string   `json:"secondaryColor"`
	AccentColor      string   `json:"accentColor"`
	ContactEmail     string   `json:"contactEmail"`
	ContactPhone     string   `json:"contactPhone"`
	ContactAddress   string   `json:"contactAddress"`
	ContactWebsite   string   `json:"contactWebsite"`
	LegalCompanyName string   `json:"legalCompanyName"`
	CompanyDocument  string   `json:"companyDocument"`
	HeroTitle        string   `json:"heroTitle"`
	HeroSubtitle     string   `json:"heroSubtitle"`
	EnabledFeatures  []string `json:"enabledFeatures"`
}

// Save godoc
// @Summary Activate a branding configuration
// @Description Deactivates the previous configuration and stores the new one as active
// @Tags branding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BrandingRequest true "Branding"
// @Success 201 {object} util.Response{data=model.ClientBranding}
// @Router /api/admin/branding [post]
func (c *BrandingController) Save(ctx *gin.Context) {
	var req BrandingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	branding := &model.ClientBranding{
		CompanyName:      req.CompanyName,
		Tagline:          req.Tagline,
		Description:      req.Description,
		LogoURL:          req.LogoURL,
		FaviconURL:       req.FaviconURL,
		PrimaryColor:     req.PrimaryColor,
		SecondaryColor:   req.SecondaryColor,
		AccentColor:      req.AccentColor,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		ContactAddress:   req.ContactAddress,
		ContactWebsite:   req.ContactWebsite,
		LegalCompanyName: req.LegalCompanyName,
		CompanyDocument:  req.CompanyDocument,
		HeroTitle:        req.HeroTitle,
		HeroSubtitle:     req.HeroSubtitle,
		EnabledFeatures:  strings.Join(req.EnabledFeatures, ","),
		IsActive:         true,
	}

	if err := c.BrandingService.Save(ctx.Request.Context(), branding); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, branding)
}

// UploadAsset godoc
// @Summary Upload a branding asset
// @Description Uploads a logo or favicon and returns its public URL
// @Tags branding
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param kind formData string true "Asset kind (logo or favicon)"
// @Param file formData file true "Asset file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/admin/branding/assets [post]
func (c *BrandingController) UploadAsset(ctx *gin.Context) {
	kind := ctx.PostForm("kind")
	if kind != "logo" && kind != "favicon" {
		util.BadRequest(ctx, "kind deve ser logo ou favicon")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "arquivo ausente")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.BrandingService.UploadAsset(
		ctx.Request.Context(),
		kind,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url, "kind": kind})
}
