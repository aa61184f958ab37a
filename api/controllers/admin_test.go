package controllers

import (
	testutils "github.com/alex-pricope/hackathon-scoring/api/controllers/testing"
	"github.com/alex-pricope/hackathon-scoring/api/models"
	"github.com/alex-pricope/hackathon-scoring/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
)

func TestPurgeRound(t *testing.T) {
	t.Run("Unhappy path - organizer is not an admin", func(t *testing.T) {
		s := setupTestServer(t)
		res := testutils.PerformRequest(s.router, http.MethodDelete, "/api/admin/rounds/r1", nil, s.as(t, "org", scoring.RoleOrganizer))
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Unhappy path - unknown round", func(t *testing.T) {
		s := setupTestServer(t)
		res := testutils.PerformRequest(s.router, http.MethodDelete, "/api/admin/rounds/nope", nil, map[string]string{"x-admin-token": testAdminToken})
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Happy path - admin token purges the round", func(t *testing.T) {
		s := setupTestServer(t)
		evaluateAll(t, s)
		res := testutils.PerformRequest(s.router, http.MethodPost, "/api/rounds/r1/results/calculate", nil, s.as(t, "org", scoring.RoleOrganizer))
		require.Equal(t, http.StatusOK, res.Code)

		res = testutils.PerformRequest(s.router, http.MethodDelete, "/api/admin/rounds/r1", nil, map[string]string{"x-admin-token": testAdminToken})
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		purge := testutils.Decode[models.PurgeResponse](t, res)
		assert.Equal(t, "r1", purge.RoundID)
		assert.Equal(t, []models.CascadeStepResponse{
			{Name: "results", Deleted: 2},
			{Name: "evaluations", Deleted: 4},
			{Name: "submissions", Deleted: 2},
			{Name: "criteria", Deleted: 0},
		}, purge.Steps)
	})

	t.Run("Happy path - admin bearer token", func(t *testing.T) {
		s := setupTestServer(t)
		res := testutils.PerformRequest(s.router, http.MethodDelete, "/api/admin/rounds/r1", nil, s.as(t, "root", scoring.RoleAdmin))
		assert.Equal(t, http.StatusOK, res.Code)
	})
}
