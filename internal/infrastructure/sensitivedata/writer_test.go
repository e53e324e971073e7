package sensitivedata_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/reglet-dev/connmask/internal/infrastructure/sensitivedata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperScrubber struct{}

func (upperScrubber) ScrubString(s string) string { return strings.ToUpper(s) }

func TestWriter_WithProvider(t *testing.T) {
	var buf bytes.Buffer
	provider := sensitivedata.NewProvider()
	provider.Track("secret")

	writer := sensitivedata.NewWriter(&buf, provider)

	n, err := writer.Write([]byte("This is a secret."))
	require.NoError(t, err)

	assert.Equal(t, len("This is a secret."), n)
	assert.Equal(t, "This is a ********.", buf.String())
}

func TestWriter_WithoutScrubbers(t *testing.T) {
	var buf bytes.Buffer
	writer := sensitivedata.NewWriter(&buf, nil)

	input := "This is a secret."
	n, err := writer.Write([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, len(input), n)
	assert.Equal(t, input, buf.String())
}

func TestWriter_ScrubbersRunInOrder(t *testing.T) {
	var buf bytes.Buffer
	provider := sensitivedata.NewProvider()
	provider.Track("abcdef")

	writer := sensitivedata.NewWriter(&buf, provider, upperScrubber{})
	_, err := writer.Write([]byte("x abcdef y"))
	require.NoError(t, err)

	assert.Equal(t, "X ******** Y", buf.String())
}

func TestWriter_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	provider := sensitivedata.NewProvider()
	provider.Track("secret")
	writer := sensitivedata.NewWriter(&buf, provider)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = writer.Write([]byte("secret\n"))
		}()
	}
	wg.Wait()

	assert.Equal(t, strings.Repeat("********\n", 50), buf.String())
}

func TestWriter_ShortSecretLeavesStreamIntact(t *testing.T) {
	var buf bytes.Buffer
	provider := sensitivedata.NewProvider()
	provider.Track("true")
	writer := sensitivedata.NewWriter(&buf, provider)

	line := "msg=\"   include.schema.changes = true\"\n"
	_, err := writer.Write([]byte(line))
	require.NoError(t, err)

	assert.Equal(t, line, buf.String())
}
