package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"qtyaudit/collections"
	"qtyaudit/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		return se.Next()
	})

	// Serve static files from ./static
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Audit runs ───────────────────────────────────────────
		se.Router.GET("/audits", handlers.HandleAuditList(app))
		se.Router.GET("/audits/upload", handlers.HandleAuditUploadPage(app))
		se.Router.POST("/audits", handlers.HandleAuditRun(app))
		se.Router.GET("/audits/latest", handlers.HandleAuditLatest(app))

		// Export routes must be before /audits/{id} so "latest" and
		// "export" never match as an ID.
		se.Router.GET("/audits/{id}/export/{format}", handlers.HandleAuditExport(app))
		se.Router.GET("/audits/{id}", handlers.HandleAuditView(app))
		se.Router.DELETE("/audits/{id}", handlers.HandleAuditDelete(app))

		// Redirect home to the run history
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/audits")
		})

		return se.Next()
	})

	// Headless mode: `qtyaudit audit <input.xlsx>` runs without the server.
	app.RootCmd.AddCommand(newAuditCommand())

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
