package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/taskhub-api/internal/api"
	"github.com/phrazzld/taskhub-api/internal/api/middleware"
	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/config"
)

// buildRouter assembles the chi router: standard middleware, trace
// propagation, the API-key check, and the resource routes.
func buildRouter(services appServices, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	userHandler := api.NewUserHandler(services.users)
	groupHandler := api.NewGroupHandler(services.groups, services.memberships)
	taskHandler := api.NewTaskHandler(services.tasks)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKeyMiddleware(cfg.Auth.APIKeyDigests))

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.RegisterUser)
			r.Get("/", userHandler.ListUsers)
			r.Get("/{userID}", userHandler.GetUser)
			r.Put("/{userID}", userHandler.UpdateUser)
			r.Delete("/{userID}", userHandler.DeleteUser)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", groupHandler.CreateGroup)
			r.Get("/", groupHandler.ListGroups)

			r.Route("/{groupID}", func(r chi.Router) {
				r.Get("/", groupHandler.GetGroup)
				r.Put("/", groupHandler.UpdateGroup)
				r.Delete("/", groupHandler.DeleteGroup)

				r.Route("/members", func(r chi.Router) {
					r.Get("/", groupHandler.ListMembers)
					r.Post("/", groupHandler.EnrollMember)
					r.Put("/{userID}", groupHandler.UpdateMemberRole)
					r.Delete("/{userID}", groupHandler.RemoveMember)
				})

				r.Route("/tasks", func(r chi.Router) {
					r.Post("/", taskHandler.CreateTask)
					r.Get("/", taskHandler.ListTasks)
					r.Get("/{taskID}", taskHandler.GetTask)
					r.Put("/{taskID}", taskHandler.UpdateTask)
					r.Delete("/{taskID}", taskHandler.DeleteTask)
				})
			})
		})
	})

	return r
}
