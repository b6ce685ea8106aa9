package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/persona-lab/backend/internal/config"
	"github.com/zhouzirui/persona-lab/backend/internal/model/persona"
	"github.com/zhouzirui/persona-lab/backend/internal/service/prompt"
)

const defaultQuestion = "人工智能对教育的影响是什么？"

type options struct {
	personaID string
	question  string
	unknownID string
	quiet     bool
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	var opts options
	flag.StringVar(&opts.personaID, "persona", "", "只检查指定人设 ID，留空则检查全部")
	flag.StringVar(&opts.question, "question", defaultQuestion, "用于生成提示词的问题")
	flag.StringVar(&opts.unknownID, "unknown", "nonexistent-id", "用于验证 PersonaNotFound 的未知 ID，留空跳过")
	flag.BoolVar(&opts.quiet, "quiet", false, "只输出检查结果，不打印完整提示词")
	flag.Parse()

	personas, err := cfg.Catalog.Personas()
	if err != nil {
		log.Fatalf("人设目录加载失败: %v", err)
	}
	catalog, err := persona.NewCatalog(personas)
	if err != nil {
		log.Fatalf("人设目录无效: %v", err)
	}

	failures := run(os.Stdout, prompt.NewBuilder(catalog), opts)
	if failures > 0 {
		log.Fatalf("%d 项检查失败", failures)
	}
}

// run applies the selected personas to opts.question and reports every failed check.
func run(out io.Writer, builder *prompt.Builder, opts options) int {
	failures := 0
	fail := func(format string, args ...any) {
		failures++
		fmt.Fprintf(out, "FAIL "+format+"\n", args...)
	}

	all := builder.Personas()
	fmt.Fprintf(out, "共 %d 位老师人设\n", len(all))

	targets := all
	if opts.personaID != "" {
		targets = nil
		for _, p := range all {
			if p.ID == opts.personaID {
				targets = append(targets, p)
			}
		}
		if len(targets) == 0 {
			fail("persona %s not found in catalog", opts.personaID)
		}
	}

	for _, p := range targets {
		fmt.Fprintf(out, "\n== %s (%s) ==\n", p.Name, p.ID)

		composed, err := builder.Apply(opts.question, p.ID)
		if err != nil {
			fail("%s: apply: %v", p.ID, err)
			continue
		}
		if !opts.quiet {
			fmt.Fprintln(out, composed)
		}

		checks := []struct {
			label string
			value string
		}{
			{"question", opts.question},
			{"name", p.Name},
			{"catchphrase", p.Catchphrase},
		}
		for _, c := range checks {
			if !strings.Contains(composed, c.value) {
				fail("%s: prompt does not contain %s %q", p.ID, c.label, c.value)
				continue
			}
			fmt.Fprintf(out, "ok   %s: contains %s\n", p.ID, c.label)
		}
	}

	if opts.unknownID != "" {
		_, err := builder.Apply(opts.question, opts.unknownID)
		if errors.Is(err, persona.ErrPersonaNotFound) {
			fmt.Fprintf(out, "ok   %s: PersonaNotFound\n", opts.unknownID)
		} else {
			fail("%s: expected PersonaNotFound, got %v", opts.unknownID, err)
		}
	}

	return failures
}
