package main_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/lunchmenu"
	main "github.com/fwojciec/lunchmenu/cmd/lunchmenu"
	"github.com/fwojciec/lunchmenu/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dishes = `Kuřecí řízek, bramborová kaše
Vepřová pečeně, zelí, knedlík
Smažený sýr, hranolky
`

func TestAnalyzeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("summarizes dishes from a file", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()

		err := (&main.AnalyzeCmd{File: writeTemp(t, "dishes.txt", dishes)}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, lunchmenu.Recommend(lunchmenu.SplitLines(dishes)).Summary+"\n", stdout.String())
	})

	t.Run("reads stdin and prints JSON groups", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Stdin = strings.NewReader(dishes)

		err := (&main.AnalyzeCmd{JSON: true}).Run(deps)

		require.NoError(t, err)
		var rec lunchmenu.Recommendation
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &rec))
		assert.Equal(t, []string{"Kuřecí řízek, bramborová kaše"}, rec.Groups[lunchmenu.TagChicken])
		assert.Equal(t, []string{"Vepřová pečeně, zelí, knedlík"}, rec.Groups[lunchmenu.TagPork])
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps()
		deps.Stdin = strings.NewReader("\n  \n")

		err := (&main.AnalyzeCmd{}).Run(deps)

		assert.Equal(t, lunchmenu.EINVALID, lunchmenu.ErrorCode(err))
	})
}

func TestShowRulesCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps()
	deps.Rules = lunchmenu.DefaultRules()

	require.NoError(t, (&main.ShowRulesCmd{}).Run(deps))

	decoded, err := yaml.DecodeRules(strings.NewReader(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, deps.Rules, decoded)
}
