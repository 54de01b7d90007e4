// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-pim-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_selectItemsQuery_SQLContainsParts(t *testing.T) {
	query, args, err := selectItemsQuery(models.KindEvent)
	require.NoError(t, err)

	require.Equal(t, []any{"event"}, args)

	q := strings.ToLower(query)
	assert.Contains(t, q, "select id, summary, body, categories, last_modified, payload")
	assert.Contains(t, q, "from items")
	assert.Contains(t, q, "where kind = ?")
	assert.Contains(t, q, "order by id")
}

func Test_selectItemQuery_FiltersByKindAndID(t *testing.T) {
	query, args, err := selectItemQuery(models.KindTodo, "todo-1")
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "id = ?")
	assert.Contains(t, q, "kind = ?")
	assert.ElementsMatch(t, []any{"todo-1", "todo"}, args)
}

func Test_upsertItemQuery_ArgsOrder(t *testing.T) {
	row := itemRow{
		ID:           "c-1",
		Summary:      "Ada",
		Body:         "",
		Categories:   `["Work"]`,
		LastModified: 1700000000,
		Payload:      []byte("BEGIN:VCARD"),
	}

	query, args, err := upsertItemQuery(models.KindContact, row)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "insert into items (kind,id,summary,body,categories,last_modified,payload)")
	assert.Contains(t, q, "on conflict (kind, id) do update set")
	require.Len(t, args, 7)
	assert.Equal(t, "contact", args[0])
	assert.Equal(t, "c-1", args[1])
	assert.Equal(t, []byte("BEGIN:VCARD"), args[6])
}

func Test_deleteItemQuery(t *testing.T) {
	query, args, err := deleteItemQuery(models.KindNote, "n-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(strings.ToLower(query), "delete from items where"))
	assert.ElementsMatch(t, []any{"n-1", "note"}, args)
}
