package converter

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"html2maud/internal/config"
	"html2maud/internal/html"
)

const titleDiv = `<div id="title" class="text-xl font-bold">Hello world</div>`

func TestConvertFullStyles(t *testing.T) {
	out, err := Convert(titleDiv, config.Default())
	require.NoError(t, err)

	want := "html! {\n" +
		"    div id=\"title\" class=\"text-xl font-bold\" {\n" +
		"        \"Hello world\"\n" +
		"    }\n" +
		"}"
	assert.Equal(t, want, out)
}

func TestConvertShortNoDiv(t *testing.T) {
	out, err := Convert(titleDiv, config.Config{
		IDStyle:    config.IDStyleShortNoDiv,
		ClassStyle: config.ClassStyleShortNoDiv,
	})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "    #title.text-xl.font-bold {", lines[1])
}

func TestConvertShortKeepsDiv(t *testing.T) {
	out, err := Convert(titleDiv, config.Config{
		IDStyle:    config.IDStyleShort,
		ClassStyle: config.ClassStyleShort,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "    div #title.text-xl.font-bold {\n")
}

func TestConvertVoidElement(t *testing.T) {
	out, err := ConvertWithDefaults(`<p>one<br>two</p>`)
	require.NoError(t, err)

	assert.Contains(t, out, "\n        br;\n")
	assert.Equal(t, strings.Count(out, "{"), strings.Count(out, "}"))
}

func TestConvertFullDocument(t *testing.T) {
	src := `<html><head><title>T</title></head><body><p>Hi</p></body></html>`

	result, err := New(config.Config{Render: config.RenderFull}).Convert(src)
	require.NoError(t, err)

	assert.Equal(t, config.RenderFull, result.Render)
	assert.Equal(t, strings.Join([]string{
		"html! {",
		"    (maud::DOCTYPE)",
		"    head {",
		"        title {",
		`            "T"`,
		"        }",
		"    }",
		"    body {",
		"        p {",
		`            "Hi"`,
		"        }",
		"    }",
		"}",
	}, "\n"), result.Output)
	assert.Empty(t, result.Warnings)
}

func TestConvertQuotesNumericShorthand(t *testing.T) {
	out, err := Convert(`<section id="2fa">x</section>`, config.Config{IDStyle: config.IDStyleShort})
	require.NoError(t, err)
	assert.Contains(t, out, `section #"2fa" {`)

	out, err = Convert(`<section id="login">x</section>`, config.Config{IDStyle: config.IDStyleShort})
	require.NoError(t, err)
	assert.Contains(t, out, `section #login {`)
}

func TestConvertAutoDetection(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want config.Render
	}{
		{"fragment", `<p>x</p>`, config.RenderOnlyBody},
		{"html tag", `<html><p>x</p></html>`, config.RenderFull},
		{"head tag", `<head></head><p>x</p>`, config.RenderFull},
		{"body tag", `<body><p>x</p></body>`, config.RenderFull},
		{"attributed body is not detected", `<body class="dark"><p>x</p></body>`, config.RenderOnlyBody},
		{"uppercase is not detected", `<BODY><p>x</p></BODY>`, config.RenderOnlyBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auto, err := NewWithDefaults().Convert(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, auto.Render)

			explicit, err := New(config.Config{Render: tt.want}).Convert(tt.src)
			require.NoError(t, err)
			assert.Equal(t, explicit.Output, auto.Output)
		})
	}
}

func TestWarnings(t *testing.T) {
	t.Run("auto heuristic", func(t *testing.T) {
		warnings, err := NewWithDefaults().Validate(`<body class="dark"><p>x</p></body>`)
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, WarnAutoHeuristic, warnings[0].Kind)
		assert.Equal(t, "body", warnings[0].Element)
		assert.Contains(t, warnings[0].Message, `<body class="dark">`)
	})

	t.Run("head discarded", func(t *testing.T) {
		warnings, err := NewWithDefaults().Validate(`<title>T</title><p>x</p>`)
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, WarnHeadDiscarded, warnings[0].Kind)
		assert.Equal(t, "[head-discarded] head: 3 head line(s) not included in body-only output", warnings[0].String())
	})

	t.Run("no heuristic warning when mode is explicit", func(t *testing.T) {
		warnings, err := New(config.Config{Render: config.RenderFull}).Validate(`<body class="dark"><p>x</p></body>`)
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("header is not a head tag", func(t *testing.T) {
		warnings, err := NewWithDefaults().Validate(`<header>x</header>`)
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})
}

func TestConvertStats(t *testing.T) {
	src := `<html><head><meta charset="utf-8"></head><body><!-- c --><p>a<br>b</p></body></html>`

	result, err := NewWithDefaults().Convert(src)
	require.NoError(t, err)

	stats := result.Stats
	assert.Equal(t, 6, stats.ElementsProcessed) // html head meta body p br
	assert.Equal(t, 2, stats.VoidElements)
	assert.Equal(t, 2, stats.TextLines)
	assert.Equal(t, 1, stats.CommentsDropped)
	assert.Equal(t, 1, stats.HeadLines)
	assert.Equal(t, 5, stats.BodyLines)
	assert.GreaterOrEqual(t, stats.ProcessingTimeMs, int64(0))
}

func TestConvertSelection(t *testing.T) {
	src := `<html><head><title>T</title></head><body>
<nav class="menu"><a href="/">Home</a></nav>
<main><div class="card"><h2>One</h2></div><div class="card"><h2>Two</h2></div></main>
</body></html>`

	result, err := New(config.Config{Render: config.RenderFull, ClassStyle: config.ClassStyleShortNoDiv}).ConvertSelection(src, "div.card")
	require.NoError(t, err)

	assert.Equal(t, config.RenderOnlyBody, result.Render)
	assert.Equal(t, strings.Join([]string{
		"html! {",
		"    .card {",
		"        h2 {",
		`            "One"`,
		"        }",
		"    }",
		"    .card {",
		"        h2 {",
		`            "Two"`,
		"        }",
		"    }",
		"}",
	}, "\n"), result.Output)
	assert.NotContains(t, result.Output, "Home")
	assert.Empty(t, result.Warnings)
}

func TestConvertSelectionRootTags(t *testing.T) {
	src := `<html><head><title>T</title></head><body><div><p>Hi</p></div></body></html>`

	tests := []struct {
		selector string
		want     []string
	}{
		{
			selector: "body",
			want: []string{
				"html! {",
				"    body {",
				"        div {",
				"            p {",
				`                "Hi"`,
				"            }",
				"        }",
				"    }",
				"}",
			},
		},
		{
			selector: "head",
			want: []string{
				"html! {",
				"    head {",
				"        title {",
				`            "T"`,
				"        }",
				"    }",
				"}",
			},
		},
		{
			selector: "html",
			want: []string{
				"html! {",
				"    html {",
				"        head {",
				"            title {",
				`                "T"`,
				"            }",
				"        }",
				"        body {",
				"            div {",
				"                p {",
				`                    "Hi"`,
				"                }",
				"            }",
				"        }",
				"    }",
				"}",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			result, err := NewWithDefaults().ConvertSelection(src, tt.selector)
			require.NoError(t, err)
			assert.Equal(t, strings.Join(tt.want, "\n"), result.Output)
			assert.Zero(t, result.Stats.HeadLines)
			assert.Empty(t, result.Warnings)
		})
	}
}

func TestConvertSelectionInvalidSelector(t *testing.T) {
	_, err := NewWithDefaults().ConvertSelection(`<p>x</p>`, "div[")
	require.Error(t, err)
	assert.True(t, errors.Is(err, html.ErrInvalidSelector))
}

func TestConvertLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewWithDefaults(WithLogger(logger)).Convert(`<p>x</p>`)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "converted document")
	assert.Contains(t, buf.String(), "render=onlyBody")
}

func TestNoscriptParsing(t *testing.T) {
	src := `<div><noscript><p>enable js</p></noscript></div>`

	scripted, err := NewWithDefaults().ConvertString(src)
	require.NoError(t, err)
	assert.Contains(t, scripted, `"<p>enable js</p>"`)
	assert.NotContains(t, scripted, "            p {")

	unscripted, err := NewWithDefaults(WithScripting(false)).ConvertString(src)
	require.NoError(t, err)
	assert.Contains(t, unscripted, "            p {")
}

func TestConverterIsSafeForConcurrentUse(t *testing.T) {
	c := New(config.Config{IDStyle: config.IDStyleShort, ClassStyle: config.ClassStyleShort})

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := fmt.Sprintf(`<div id="item%d" class="row">n%d</div>`, i, i)
			out, err := c.ConvertString(src)
			if err != nil {
				errs <- err
				return
			}
			want := fmt.Sprintf("    div #\"item%d\".row {\n        \"n%d\"\n    }", i, i)
			if !strings.Contains(out, want) {
				errs <- fmt.Errorf("goroutine %d: unexpected output %q", i, out)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
