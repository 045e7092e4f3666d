package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiModelAliases(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.5-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-2.0-flash", geminiModels))
}

func TestBuildGeminiSchema_QuestionShape(t *testing.T) {
	schema := buildGeminiSchema(questionSchema().Definition)

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.ElementsMatch(t, []string{"text", "options", "correctAnswer"}, schema.Required)

	opts := schema.Properties["options"]
	require.NotNil(t, opts)
	assert.Equal(t, genai.TypeArray, opts.Type)
	assert.Equal(t, genai.TypeString, opts.Items.Type)
	require.NotNil(t, opts.MinItems)
	require.NotNil(t, opts.MaxItems)
	assert.EqualValues(t, 4, *opts.MinItems)
	assert.EqualValues(t, 4, *opts.MaxItems)

	ans := schema.Properties["correctAnswer"]
	require.NotNil(t, ans)
	assert.Equal(t, genai.TypeInteger, ans.Type)
	require.NotNil(t, ans.Minimum)
	require.NotNil(t, ans.Maximum)
	assert.Equal(t, 0.0, *ans.Minimum)
	assert.Equal(t, 3.0, *ans.Maximum)
}

func TestBuildGeminiSchema_EnumsAndUnknownTypes(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"level": map[string]any{"type": "string", "enum": []any{"easy", "hard", 3}},
			"odd":   map[string]any{"type": "null"},
		},
		"additionalProperties": false,
	})

	assert.Equal(t, []string{"easy", "hard"}, schema.Properties["level"].Enum)
	assert.Equal(t, genai.TypeString, schema.Properties["odd"].Type)
	assert.Nil(t, schema.Properties["level"].MinItems)
}
