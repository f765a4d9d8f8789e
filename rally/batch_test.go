package rally

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMany(t *testing.T) {
	f := newFakeRally(t, func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSuffix(r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:], ".js")
		fmt.Fprintf(w, `{"Defect": {"_ref": "/defect/%s.js", "FormattedID": "DE%s"}}`, id, id)
	})
	client := f.newClient(t, WithConcurrency(2))

	ids := []string{"3", "1", "2", "5"}
	objects, err := client.GetMany(context.Background(), "defect", ids)
	require.NoError(t, err)
	require.Len(t, objects, len(ids))
	for i, id := range ids {
		assert.Equal(t, "DE"+id, objects[i].String("FormattedID"))
	}
	assert.Len(t, f.recorded(), len(ids))

	objects, err = client.GetMany(context.Background(), "defect", nil)
	require.NoError(t, err)
	assert.Nil(t, objects)
}

func TestGetMany_FailsFast(t *testing.T) {
	f := newFakeRally(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/2.js") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, `{"Defect": {"_ref": "/defect/1.js"}}`)
	})
	client := f.newClient(t, WithConcurrency(1))

	objects, err := client.GetMany(context.Background(), "defect", []string{"1", "2", "3"})
	require.Error(t, err)
	assert.Nil(t, objects)

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.True(t, statusErr.IsNotFound())
}

func TestDeleteMany(t *testing.T) {
	f := newFakeRally(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/13.js") {
			io.WriteString(w, `{"OperationResult": {"Errors": ["Object is locked"]}}`)
			return
		}
		io.WriteString(w, `{"OperationResult": {"Errors": [], "Warnings": []}}`)
	})
	client := f.newClient(t)

	result := client.DeleteMany(context.Background(), "task", []string{"11", "12", "13", "14"})
	assert.Equal(t, 4, result.Requested)
	assert.Equal(t, []string{"11", "12", "14"}, result.Successful)
	require.True(t, result.Failed())
	assert.Contains(t, result.Err.Error(), "13")
	assert.Contains(t, result.Err.Error(), "Object is locked")
	assert.ErrorIs(t, result.Err, ErrAPI)

	var methods []string
	for _, req := range f.recorded() {
		methods = append(methods, req.Method+" "+req.Path)
	}
	sort.Strings(methods)
	assert.Equal(t, []string{
		"DELETE task/11.js",
		"DELETE task/12.js",
		"DELETE task/13.js",
		"DELETE task/14.js",
	}, methods)
}

func TestDeleteMany_Empty(t *testing.T) {
	client := &Client{concurrency: DefaultConcurrency}
	result := client.DeleteMany(context.Background(), "task", nil)
	assert.Equal(t, 0, result.Requested)
	assert.False(t, result.Failed())
}
