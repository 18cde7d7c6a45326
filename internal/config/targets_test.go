package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTarget_ConflictStrategies(t *testing.T) {
	useMemFs(t)

	first := &Target{ID: "1", SiteName: "contoso", ComputerName: "https://a"}
	second := &Target{ID: "2", SiteName: "contoso", ComputerName: "https://b"}

	outcome, err := AddTarget("contoso", first, ConflictFail)
	require.NoError(t, err)
	assert.Equal(t, TargetCreated, outcome)

	_, err = AddTarget("contoso", second, ConflictFail)
	assert.ErrorIs(t, err, ErrTargetExists)

	outcome, err = AddTarget("contoso", second, ConflictSkip)
	require.NoError(t, err)
	assert.Equal(t, TargetSkipped, outcome)

	got, err := GetTarget("contoso")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.ID)

	outcome, err = AddTarget("contoso", second, ConflictOverwrite)
	require.NoError(t, err)
	assert.Equal(t, TargetOverwritten, outcome)

	got, err = GetTarget("contoso")
	require.NoError(t, err)
	assert.Equal(t, "https://b", got.ComputerName)
}

func TestGetTarget_Missing(t *testing.T) {
	useMemFs(t)

	got, err := GetTarget("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseConflictStrategy(t *testing.T) {
	for _, s := range []string{"fail", "skip", "overwrite"} {
		strategy, ok := ParseConflictStrategy(s)
		assert.True(t, ok, s)
		assert.Equal(t, ConflictStrategy(s), strategy)
	}
	_, ok := ParseConflictStrategy("merge")
	assert.False(t, ok)
}

func TestCredentials_RoundTrip(t *testing.T) {
	useMemFs(t)

	require.NoError(t, SetCredentials("t1", "$contoso", "s3cret"))

	user, pass, err := GetCredentials("t1")
	require.NoError(t, err)
	assert.Equal(t, "$contoso", user)
	assert.Equal(t, "s3cret", pass)

	require.NoError(t, DeleteCredentials("t1"))
	user, pass, err = GetCredentials("t1")
	require.NoError(t, err)
	assert.Empty(t, user)
	assert.Empty(t, pass)
}

func TestEncryptDecryptCredentials(t *testing.T) {
	for _, plain := range []string{"", "x", "exactly16bytes!!", `{"version":1}`} {
		enc, err := EncryptCredentials([]byte(plain))
		require.NoError(t, err)

		dec, err := DecryptCredentials(enc)
		require.NoError(t, err)
		assert.Equal(t, plain, string(dec))
	}

	_, err := DecryptCredentials([]byte("short"))
	assert.Error(t, err)
}

func TestRemoveTarget(t *testing.T) {
	useMemFs(t)

	_, err := AddTarget("contoso", &Target{ID: "1"}, ConflictFail)
	require.NoError(t, err)

	removed, err := RemoveTarget("contoso")
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, "1", removed.ID)

	removed, err = RemoveTarget("contoso")
	require.NoError(t, err)
	assert.Nil(t, removed)
}
