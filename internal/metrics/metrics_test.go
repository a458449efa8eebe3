package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCommand(t *testing.T) {
	m := New()
	m.ObserveCommand("add_paragraph", true, time.Millisecond)
	m.ObserveCommand("add_paragraph", true, time.Millisecond)
	m.ObserveCommand("add_paragraph", false, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commands.WithLabelValues("add_paragraph", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("add_paragraph", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestSetDocumentOpen(t *testing.T) {
	m := New()
	m.SetDocumentOpen(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentOpen))
	m.SetDocumentOpen(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.documentOpen))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveCommand("x", true, 0)
	m.SetDocumentOpen(true)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveCommand("open_document", false, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	expected := `
# HELP docxedit_commands_total Total document commands by tool and status
# TYPE docxedit_commands_total counter
docxedit_commands_total{status="error",tool="open_document"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "docxedit_commands_total"))
	assert.Contains(t, rec.Body.String(), "docxedit_document_open 0")
}
