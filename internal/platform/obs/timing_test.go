package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogsFailureWithRequestID(t *testing.T) {
	hook := test.NewLocal(logrus.StandardLogger())
	defer hook.Reset()

	ctx := WithRequestID(context.Background(), "req-1")
	err := errors.New("boom")
	Time(ctx, "routes.optimize")(&err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "req-1", entry.Data["req_id"])
	assert.Equal(t, "routes.optimize", entry.Data["op"])
	assert.Equal(t, err, entry.Data[logrus.ErrorKey])
}

func TestConfigure(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	require.NoError(t, Configure("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, Configure("loud", "text"))
	assert.Error(t, Configure("info", "xml"))
	require.NoError(t, Configure("info", "text"))
}
