package handler

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"studiosync/internal/service"
)

// Services bundles the injected use cases consumed by the HTTP layer.
type Services struct {
	Auth      service.AuthService
	Clients   service.ClientService
	Documents service.DocumentService
	Labels    service.LabelService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse input, call the service, map the result.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/login", Login(svcs.Auth))
	app.Post("/setup-password", SetupPassword(svcs.Auth))

	app.Get("/clients", ListClients(svcs.Clients))
	app.Post("/clients", ProvisionClient(svcs.Clients))
	app.Put("/clients/:id", UpdateClient(svcs.Clients))
	app.Delete("/clients/:id", DeleteClient(svcs.Clients))

	app.Get("/documents", ListDocuments(svcs.Documents))
	app.Post("/documents", UploadDocument(svcs.Documents))
	app.Get("/documents/:id/download", DownloadDocument(svcs.Documents))
	app.Put("/documents/:id/label", UpdateDocumentLabel(svcs.Documents))
	app.Delete("/documents/:id", DeleteDocument(svcs.Documents))

	app.Get("/labels", ListLabels(svcs.Labels))
}

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a trivial liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a username/password pair and returns the identity
// descriptor. The descriptor's active flag tells the UI whether to force
// password setup before showing documents.
func Login(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		identity, err := auth.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"user": identity})
	}
}

type setupPasswordRequest struct {
	UserID      string `json:"user_id"`
	NewPassword string `json:"new_password"`
}

// SetupPassword sets the permanent credential and activates the account.
func SetupPassword(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req setupPasswordRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.UserID == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "user_id is required")
		}
		if err := auth.SetupPassword(c.UserContext(), req.UserID, req.NewPassword); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"status": "success"})
	}
}

// ListClients returns all clients with their account usernames.
func ListClients(clients service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := clients.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": out})
	}
}

type clientRequest struct {
	CompanyName string `json:"company_name"`
	VATNumber   string `json:"vat_number"`
	Email       string `json:"email"`
	Username    string `json:"username"`
}

// ProvisionClient creates a client and its gated account. The response is the
// only place the temporary password ever appears in plaintext.
func ProvisionClient(clients service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req clientRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := clients.Provision(c.UserContext(), req.CompanyName, req.VATNumber, req.Email, req.Username)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// UpdateClient mutates a client's business fields; account and credentials
// are untouched by this path.
func UpdateClient(clients service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req clientRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		out, err := clients.Update(c.UserContext(), id, req.CompanyName, req.VATNumber, req.Email)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteClient cascades: blobs first, then the client's metadata, account
// and document rows.
func DeleteClient(clients service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := clients.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListDocuments returns one client's documents with label info.
// Scoping is by the supplied client_id; the UI owns requester scoping.
func ListDocuments(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := c.Query("client_id")
		if _, err := uuid.Parse(clientID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "client_id is required")
		}
		out, err := docs.ListByClient(c.UserContext(), clientID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": out})
	}
}

// UploadDocument accepts multipart/form-data with fields client_id and document.
func UploadDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := c.FormValue("client_id")
		if _, err := uuid.Parse(clientID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "client_id is required")
		}

		fh, err := c.FormFile("document")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "document file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := docs.Upload(c.UserContext(), clientID, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// DownloadDocument streams the blob with attachment headers carrying the
// original name, declared type and size.
func DownloadDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, doc, err := docs.Download(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.OriginalName))
		c.Set(fiber.HeaderContentLength, strconv.FormatInt(doc.Size, 10))
		return c.SendStream(rc, int(doc.Size))
	}
}

type updateLabelRequest struct {
	LabelID *string `json:"label_id"`
}

// UpdateDocumentLabel assigns or clears (null) a document's label.
func UpdateDocumentLabel(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req updateLabelRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		// An empty string clears the label too; the UI sends "" for "No Label".
		if req.LabelID != nil && *req.LabelID == "" {
			req.LabelID = nil
		}
		if err := docs.UpdateLabel(c.UserContext(), id, req.LabelID); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"status": "success"})
	}
}

// DeleteDocument removes the blob and metadata if the requesting account
// (user_id query parameter) is the owner or an admin.
func DeleteDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		userID := c.Query("user_id")
		if _, err := uuid.Parse(userID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "user_id is required")
		}
		if err := docs.Delete(c.UserContext(), id, userID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListLabels returns the document label taxonomy.
func ListLabels(labels service.LabelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := labels.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": out})
	}
}
