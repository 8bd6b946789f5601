package delivery

import (
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(
	r chi.Router,
	identity ports.IdentityResolver,
	hMedia *MediaHandler,
	hEval *EvaluationHandler,
	hMap *MapHandler,
) {
	r.Route("/api", func(api chi.Router) {
		api.Use(IdentityMiddleware(identity))

		// evaluator
		api.Get("/media/random/{mediaType}", hMedia.GetRandom)
		api.Post("/media/{mediaID}/evaluations", hEval.Submit)
		api.Get("/evaluations/history", hEval.History)
		api.Patch("/evaluations/{evaluationID}", hEval.Update)

		// admin / chercheur
		api.Get("/evaluations", hEval.ListAll)
		api.Get("/map/composite/{year}", hMap.Composite)
		api.Get("/media", hMedia.Query)
		api.Get("/media/{mediaID}", hMedia.Get)
		api.Delete("/media/{mediaID}", hMedia.Delete)
	})
}
