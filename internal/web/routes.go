package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/album-editor/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	projectsHandler := handlers.NewProjectsHandler(s.config, s.sessions)
	editorHandler := handlers.NewEditorHandler(s.config, s.sessions)
	libraryHandler := handlers.NewLibraryHandler(s.config, s.sessions)
	configHandler := handlers.NewConfigHandler(s.config)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/config", configHandler.Get)

		r.Get("/projects", projectsHandler.List)
		r.Post("/projects", projectsHandler.Create)
		r.Post("/projects/import", projectsHandler.Import)

		r.Route("/projects/{id}", func(r chi.Router) {
			r.Get("/", projectsHandler.Get)
			r.Delete("/", projectsHandler.Delete)
			r.Get("/document", projectsHandler.Export)
			r.Post("/save", projectsHandler.Save)

			// Settings
			r.Put("/settings/size", editorHandler.SetSize)
			r.Put("/settings/bleed", editorHandler.SetBleed)
			r.Put("/settings/dpi", editorHandler.SetDPI)
			r.Put("/settings/safe", editorHandler.SetSafe)
			r.Put("/settings/zoom", editorHandler.SetZoom)
			r.Put("/settings/grid", editorHandler.SetGrid)
			r.Put("/settings/guides", editorHandler.SetGuides)
			r.Put("/settings/magnet", editorHandler.SetMagnet)
			r.Put("/settings/magnet-tolerance", editorHandler.SetMagnetTolerance)

			// Assets
			r.Post("/assets", editorHandler.ImportAssets)
			r.Post("/assets/library", libraryHandler.Import)
			r.Delete("/assets/{assetId}", editorHandler.RemoveAsset)

			// Placement and layouts
			r.Post("/place", editorHandler.Place)
			r.Post("/autofill", editorHandler.AutoFill)
			r.Post("/layout", editorHandler.Layout)
			r.Post("/align", editorHandler.Align)

			// Pages and items
			r.Post("/pages", editorHandler.AddPage)
			r.Put("/pages/current", editorHandler.SetCurrentPage)
			r.Post("/pages/current/clear", editorHandler.ClearPage)
			r.Post("/pages/current/texts", editorHandler.AddText)
			r.Delete("/pages/{pageId}", editorHandler.RemovePage)
			r.Patch("/pages/{pageId}/items/{itemId}", editorHandler.UpdateItem)
			r.Delete("/pages/{pageId}/items/{itemId}", editorHandler.DeleteItem)
			r.Post("/pages/{pageId}/items/{itemId}/front", editorHandler.BringToFront)
			r.Post("/pages/{pageId}/items/{itemId}/back", editorHandler.SendToBack)

			// Selection
			r.Put("/selection", editorHandler.Select)
			r.Delete("/selection", editorHandler.ClearSelection)

			// History
			r.Post("/undo", editorHandler.Undo)
			r.Post("/redo", editorHandler.Redo)

			// Drag gesture
			r.Post("/drag/begin", editorHandler.DragBegin)
			r.Post("/drag/move", editorHandler.DragMove)
			r.Post("/drag/end", editorHandler.DragEnd)
			r.Post("/drag/cancel", editorHandler.DragCancel)
		})
	})
}
