package script

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/riddler9999/recapflow/internal/recap"
)

const systemPrompt = `You are an expert movie recap narrator. You create engaging,
concise movie summaries read as voiceover while key scenes are shown.

GUIDELINES:
- Write in present tense for immediacy
- Keep sentences punchy and dynamic
- Include emotional beats and turning points
- Avoid spoiling the ending completely
- Structure: Setup -> Rising Action -> Climax -> Resolution hint

You must respond in valid JSON format.`

const promptTemplate = `Create a %.0f-second movie recap narration for:

MOVIE TITLE: %s
GENRE: %s
TARGET WORD COUNT: %d to %d words

TRANSCRIPT/DIALOGUE FROM THE MOVIE:
%s

Break the narration into beats. Each beat is one or two sentences read over one
scene. Respond in this exact JSON format:
{
    "title": "Recap title",
    "beats": [
        {
            "text": "One or two sentences of narration.",
            "approx_duration": 6,
            "keywords": ["hero", "arrival", "town"]
        }
    ]
}

For each beat:
- "approx_duration" is the spoken length in seconds (4-10s per beat)
- "keywords" are 2-5 words naming the characters, places or action of the
  scene this beat describes, matching words likely spoken in the dialogue
- beat durations must sum to roughly %.0f seconds

Make the narration engaging and suitable for the %s genre.`

// maxTranscriptChars caps the dialogue passed to the model; longer
// transcripts are sampled in slices.
const maxTranscriptChars = 15000

// wordsPerSecond approximates narration pacing when the model omits beat
// durations.
const wordsPerSecond = 2.5

var reJSONObject = regexp.MustCompile(`\{[\s\S]*\}`)

// geminiResponse is the wire shape requested from the model.
type geminiResponse struct {
	Title string `json:"title"`
	Beats []struct {
		Text           string   `json:"text"`
		ApproxDuration float64  `json:"approx_duration"`
		Keywords       []string `json:"keywords"`
	} `json:"beats"`
}

// Generate asks Gemini for a beat-structured recap script and normalizes the
// result to the target duration. A parse failure falls back to sentence
// splitting so the pipeline can still proceed.
func (g *implGenerator) Generate(ctx context.Context, segments []recap.TranscriptSegment, title, genre string) (*recap.Script, error) {
	transcript := condenseTranscript(recap.TranscriptText(segments))

	words := int(g.targetDuration * wordsPerSecond)
	prompt := fmt.Sprintf(promptTemplate,
		g.targetDuration, title, genre, words-40, words, transcript, g.targetDuration, genre)

	raw, err := g.callGemini(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate recap script: %w", err)
	}

	script := g.parseResponse(ctx, raw, title)
	script.TargetDuration = g.targetDuration
	script.NormalizeDurations()

	if len(script.Beats) == 0 {
		return nil, fmt.Errorf("generate recap script: model returned no narration")
	}

	g.logger.Info(ctx, "Recap script generated: %d beats, %q", len(script.Beats), script.Title)
	return script, nil
}

// callGemini sends the prompt to Gemini and returns the raw text.
// Rotates API keys on 429 / quota errors.
func (g *implGenerator) callGemini(ctx context.Context, prompt string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key, keyIdx := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model,
			genai.Text(systemPrompt+"\n\n"+prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIdx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// activeKey returns the key the next call should use.
func (g *implGenerator) activeKey() (string, int) {
	g.keyMu.Lock()
	defer g.keyMu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *implGenerator) rotateKey() {
	g.keyMu.Lock()
	defer g.keyMu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

// parseResponse extracts the JSON object from the model output. Anything
// unparseable degrades to sentence-split beats over the raw text.
func (g *implGenerator) parseResponse(ctx context.Context, raw, title string) *recap.Script {
	if m := reJSONObject.FindString(raw); m != "" {
		var resp geminiResponse
		if err := json.Unmarshal([]byte(m), &resp); err == nil && len(resp.Beats) > 0 {
			script := &recap.Script{Title: resp.Title}
			if script.Title == "" {
				script.Title = fmt.Sprintf("%s - 2 Minute Recap", title)
			}
			for _, b := range resp.Beats {
				text := strings.TrimSpace(b.Text)
				if text == "" {
					continue
				}
				script.Beats = append(script.Beats, recap.NarrationBeat{
					Text:           text,
					ApproxDuration: b.ApproxDuration,
					Keywords:       b.Keywords,
				})
			}
			if len(script.Beats) > 0 {
				return script
			}
		}
	}

	g.logger.Warn(ctx, "Could not parse structured script, falling back to sentence split")
	return fallbackScript(raw, title)
}

// fallbackScript turns free-form narration into beats, one sentence group per
// beat, with durations estimated from word counts.
func fallbackScript(text, title string) *recap.Script {
	script := &recap.Script{
		Title: fmt.Sprintf("%s - 2 Minute Recap", title),
	}

	for _, sentence := range splitSentences(text) {
		wordCount := len(strings.Fields(sentence))
		if wordCount == 0 {
			continue
		}
		script.Beats = append(script.Beats, recap.NarrationBeat{
			Text:           sentence,
			ApproxDuration: float64(wordCount) / wordsPerSecond,
			Keywords:       nil,
		})
	}

	return script
}

var reSentenceEnd = regexp.MustCompile(`([.!?])\s+`)

func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	marked := reSentenceEnd.ReplaceAllString(text, "$1\x00")
	var out []string
	for _, s := range strings.Split(marked, "\x00") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// condenseTranscript samples a long transcript in equal slices so prompts
// stay within model limits while covering the whole film.
func condenseTranscript(text string) string {
	if len(text) <= maxTranscriptChars {
		return text
	}

	const parts = 5
	partLen := len(text) / parts
	sampleLen := maxTranscriptChars / parts

	samples := make([]string, 0, parts)
	for i := 0; i < parts; i++ {
		start := i * partLen
		end := start + sampleLen
		if end > len(text) {
			end = len(text)
		}
		samples = append(samples, text[start:end])
	}

	return strings.Join(samples, "\n[...]\n")
}
