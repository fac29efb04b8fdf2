package controller

import (
	"strconv"

	"campus-share-be/internal/dto"
	"campus-share-be/internal/entity"
	"campus-share-be/internal/pkg/logger"
	"campus-share-be/internal/pkg/serverutils"
	"campus-share-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILibraryController interface {
	RegisterRoutes(r fiber.Router)

	ListFiles(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Rate(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	Assistant(ctx *fiber.Ctx) error
	Subjects(ctx *fiber.Ctx) error
	Tree(ctx *fiber.Ctx) error

	Navigation(ctx *fiber.Ctx) error
	NavigateInto(ctx *fiber.Ctx) error
	NavigateToBreadcrumb(ctx *fiber.Ctx) error

	Profile(ctx *fiber.Ctx) error
	AdminStats(ctx *fiber.Ctx) error
	PurgeUploader(ctx *fiber.Ctx) error
	EventLogs(ctx *fiber.Ctx) error
}

type libraryController struct {
	service   service.ILibraryService
	eventLogs logger.ILogger
}

func NewLibraryController(service service.ILibraryService, eventLogs logger.ILogger) ILibraryController {
	return &libraryController{service: service, eventLogs: eventLogs}
}

func (c *libraryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/library/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Get("/files", c.ListFiles)
	h.Post("/files", c.Upload)
	h.Delete("/files/:id", c.Delete)
	h.Post("/files/:id/rating", c.Rate)
	h.Post("/files/:id/download", c.Download)
	h.Post("/files/:id/assistant", c.Assistant)
	h.Get("/subjects", c.Subjects)
	h.Get("/tree", c.Tree)

	h.Get("/navigation", c.Navigation)
	h.Post("/navigation/into", c.NavigateInto)
	h.Post("/navigation/breadcrumb", c.NavigateToBreadcrumb)

	h.Get("/profile", c.Profile)

	admin := h.Group("/admin", serverutils.RequireRole(entity.AccountRoleAdmin))
	admin.Get("/stats", c.AdminStats)
	admin.Delete("/uploaders/:id/files", c.PurgeUploader)
	admin.Get("/logs", c.EventLogs)
}

func (c *libraryController) ListFiles(ctx *fiber.Ctx) error {
	caller := serverutils.CallerFrom(ctx)
	res := c.service.ListFiles(ctx.Context(), caller, ctx.Query("term"), ctx.Query("subject"))
	return ctx.JSON(serverutils.SuccessResponse("Success list files", res))
}

func (c *libraryController) Upload(ctx *fiber.Ctx) error {
	caller := serverutils.CallerFrom(ctx)

	var req dto.UploadFileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Upload(ctx.Context(), caller, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload file", res))
}

func (c *libraryController) Delete(ctx *fiber.Ctx) error {
	caller := serverutils.CallerFrom(ctx)

	if err := c.service.Delete(ctx.Context(), caller, ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete file", nil))
}

func (c *libraryController) Rate(ctx *fiber.Ctx) error {
	caller := serverutils.CallerFrom(ctx)

	var req dto.RateFileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.service.Rate(ctx.Context(), caller, ctx.Params("id"), req.Rating)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rate file", res))
}

func (c *libraryController) Download(ctx *fiber.Ctx) error {
	caller := serverutils.CallerFrom(ctx)

	res, err := c.service.Download(ctx.Context(), caller, ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success download file", res))
}

func (c *libraryController) Assistant(ctx *fiber.Ctx) error {
	caller := serverutils.CallerFrom(ctx)

	var req dto.AssistantRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.Context(), caller, ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Assistant response", res))
}

func (c *libraryController) Subjects(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list subjects", c.service.Subjects(ctx.Context())))
}

func (c *libraryController) Tree(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get tree", c.service.Tree(ctx.Context())))
}

func (c *libraryController) Navigation(ctx *fiber.Ctx) error {
	caller := serverutils.CallerFrom(ctx)
	res := c.service.Navigation(ctx.Context(), caller, ctx.Query("term"), ctx.Query("subject"))
	return ctx.JSON(serverutils.SuccessResponse("Success get navigation", res))
}

func (c *libraryController) NavigateInto(ctx *fiber.Ctx) error {
	caller := serverutils.CallerFrom(ctx)

	var req dto.NavigateIntoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.NavigateInto(ctx.Context(), caller, req.FolderId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success navigate", res))
}

func (c *libraryController) NavigateToBreadcrumb(ctx *fiber.Ctx) error {
	caller := serverutils.CallerFrom(ctx)

	var req dto.NavigateToBreadcrumbRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.service.NavigateToBreadcrumb(ctx.Context(), caller, req.Index)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success navigate", res))
}

func (c *libraryController) Profile(ctx *fiber.Ctx) error {
	caller := serverutils.CallerFrom(ctx)
	return ctx.JSON(serverutils.SuccessResponse("Profile stats", c.service.Profile(ctx.Context(), caller)))
}

func (c *libraryController) AdminStats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Library stats", c.service.AdminStats(ctx.Context())))
}

func (c *libraryController) PurgeUploader(ctx *fiber.Ctx) error {
	caller := serverutils.CallerFrom(ctx)

	res, err := c.service.PurgeUploader(ctx.Context(), caller, ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Uploader purged", res))
}

func (c *libraryController) EventLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	logs, err := c.eventLogs.GetLogs(ctx.Query("level", ""), limit, (page-1)*limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Library event logs", logs))
}
