package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kuhaiku/cabana-2.0/internal/models"
)

func TestCatalogCreateRequiresSecret(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/precos",
		`{"descricao":"Barraca teepee","categoria":"barracas","valor":150}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCatalogCreateAndPublicListing(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/precos",
		`{"descricao":"Barraca teepee","categoria":"barracas","valor":150}`, true)
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPost, "/api/admin/precos",
		`{"descricao":"Luzes extras","categoria":"extras","valor":30}`, true)
	require.Equal(t, http.StatusCreated, w.Code)

	// Toggle the first item off; the public listing must hide it.
	w = env.do(t, http.MethodPut, "/api/admin/precos/1/toggle", `{"disponivel":false}`, true)
	require.Equal(t, http.StatusOK, w.Code)

	public := env.do(t, http.MethodGet, "/api/itens-disponiveis", "", false)
	require.Equal(t, http.StatusOK, public.Code)

	var items []models.PriceItem
	require.NoError(t, json.Unmarshal(public.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Luzes extras", items[0].Description)

	all := env.do(t, http.MethodGet, "/api/admin/precos", "", true)
	require.Equal(t, http.StatusOK, all.Code)
	require.NoError(t, json.Unmarshal(all.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestCatalogCreateRejectsInvalidPayload(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/precos", `{"descricao":"Barraca"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/precos",
		`{"descricao":"Barraca","categoria":"barracas","valor":-5}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogToggleUnknownItem(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/admin/precos/42/toggle", `{"disponivel":true}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFinanceEntryAndReport(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/financeiro",
		`{"tipo":"saida","titulo":"Compra de luzes","valor":90}`, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/financeiro",
		`{"tipo":"other","titulo":"Ajuste","valor":1}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	report := env.do(t, http.MethodGet, "/api/admin/financeiro", "", true)
	require.Equal(t, http.StatusOK, report.Code)

	var entries []models.FinanceEntry
	require.NoError(t, json.Unmarshal(report.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Compra de luzes", entries[0].Title)
	assert.Equal(t, "saida", entries[0].Type)
}
