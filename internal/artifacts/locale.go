package artifacts

// Language selects which template table output text comes from. Every
// sentence of an artifact set comes from one table so languages never mix
// within a response.
type Language string

const (
	LangEnglish  Language = "en"
	LangSpanish  Language = "es"
	LangJapanese Language = "ja"
)

type templateSet struct {
	// Flashcards. Question takes the concept name, answer the description.
	cardQuestion map[Style]string
	cardAnswer   map[Style]string

	// Quiz. Question takes the concept name; the correct option takes the
	// concept description (or, for debug, its anchor location).
	quizQuestion map[Style]string
	quizCorrect  map[Style]string

	// Plausible-but-wrong filler options, cycled deterministically.
	genericWrong []string

	// Learning path phases, in order.
	stepTitles       [4]string
	stepDescriptions [4]string

	// Summary narrative: top concept names, then file count.
	narrative string

	// Fallback texts used when the concept pool is empty.
	fallbackCardQuestion string // file path
	fallbackCardAnswer   string // file path
	fallbackStepTitle    string
	fallbackNarrative    string
}

var templates = map[Language]templateSet{
	LangEnglish: {
		cardQuestion: map[Style]string{
			StyleResponsibility: "What is the responsibility of %s?",
			StyleImpact:         "What would break if %s changed?",
			StyleReasoning:      "Why is %s implemented this way?",
		},
		cardAnswer: map[Style]string{
			StyleResponsibility: "%s",
			StyleImpact:         "Code depending on it would misbehave. %s",
			StyleReasoning:      "It keeps the design understandable. %s",
		},
		quizQuestion: map[Style]string{
			StyleResponsibility: "What does %s do?",
			StyleImpact:         "What is affected when %s changes?",
			StyleReasoning:      "Why does %s exist?",
			StyleDebug:          "Where would you start debugging an issue in %s?",
		},
		quizCorrect: map[Style]string{
			StyleResponsibility: "%s",
			StyleImpact:         "Everything relying on this behavior: %s",
			StyleReasoning:      "Because of its role: %s",
			StyleDebug:          "Start at %s",
		},
		genericWrong: []string{
			"It only formats log output.",
			"It is unused legacy code kept for reference.",
			"It configures the build toolchain.",
			"It renders static documentation pages.",
			"It manages operating system signals.",
			"It is a placeholder awaiting implementation.",
		},
		stepTitles: [4]string{
			"Understand the architecture",
			"Study the core abstractions",
			"Follow the supporting logic",
			"Reinforce what you learned",
		},
		stepDescriptions: [4]string{
			"Start with how the pieces fit together: %s.",
			"Dig into the main classes and functions: %s.",
			"Work through the remaining logic: %s.",
			"Revisit these to consolidate: %s.",
		},
		narrative:            "The key concepts are %s, drawn from %d analyzed files.",
		fallbackCardQuestion: "What is the role of %s?",
		fallbackCardAnswer:   "Read %s and summarize what it does.",
		fallbackStepTitle:    "Read the selected files",
		fallbackNarrative:    "No distinct concepts were extracted; review the selected files directly.",
	},
	LangSpanish: {
		cardQuestion: map[Style]string{
			StyleResponsibility: "¿Cuál es la responsabilidad de %s?",
			StyleImpact:         "¿Qué se rompería si %s cambiara?",
			StyleReasoning:      "¿Por qué %s está implementado así?",
		},
		cardAnswer: map[Style]string{
			StyleResponsibility: "%s",
			StyleImpact:         "El código que depende de ello fallaría. %s",
			StyleReasoning:      "Mantiene el diseño comprensible. %s",
		},
		quizQuestion: map[Style]string{
			StyleResponsibility: "¿Qué hace %s?",
			StyleImpact:         "¿Qué se ve afectado cuando %s cambia?",
			StyleReasoning:      "¿Por qué existe %s?",
			StyleDebug:          "¿Dónde empezarías a depurar un problema en %s?",
		},
		quizCorrect: map[Style]string{
			StyleResponsibility: "%s",
			StyleImpact:         "Todo lo que depende de este comportamiento: %s",
			StyleReasoning:      "Por su función: %s",
			StyleDebug:          "Empieza en %s",
		},
		genericWrong: []string{
			"Solo da formato a los registros.",
			"Es código heredado sin uso.",
			"Configura la cadena de compilación.",
			"Genera páginas de documentación estática.",
			"Gestiona señales del sistema operativo.",
			"Es un marcador pendiente de implementación.",
		},
		stepTitles: [4]string{
			"Comprende la arquitectura",
			"Estudia las abstracciones principales",
			"Sigue la lógica de apoyo",
			"Refuerza lo aprendido",
		},
		stepDescriptions: [4]string{
			"Empieza por cómo encajan las piezas: %s.",
			"Profundiza en las clases y funciones principales: %s.",
			"Recorre la lógica restante: %s.",
			"Repasa esto para consolidar: %s.",
		},
		narrative:            "Los conceptos clave son %s, extraídos de %d archivos analizados.",
		fallbackCardQuestion: "¿Cuál es el papel de %s?",
		fallbackCardAnswer:   "Lee %s y resume lo que hace.",
		fallbackStepTitle:    "Lee los archivos seleccionados",
		fallbackNarrative:    "No se extrajeron conceptos distintos; revisa los archivos seleccionados directamente.",
	},
	LangJapanese: {
		cardQuestion: map[Style]string{
			StyleResponsibility: "%s の責務は何ですか?",
			StyleImpact:         "%s が変更されると何が壊れますか?",
			StyleReasoning:      "%s はなぜこのように実装されていますか?",
		},
		cardAnswer: map[Style]string{
			StyleResponsibility: "%s",
			StyleImpact:         "これに依存するコードが誤動作します。%s",
			StyleReasoning:      "設計を理解しやすく保つためです。%s",
		},
		quizQuestion: map[Style]string{
			StyleResponsibility: "%s は何をしますか?",
			StyleImpact:         "%s が変更されると何に影響しますか?",
			StyleReasoning:      "%s はなぜ存在しますか?",
			StyleDebug:          "%s の問題をデバッグするならどこから始めますか?",
		},
		quizCorrect: map[Style]string{
			StyleResponsibility: "%s",
			StyleImpact:         "この動作に依存するすべて: %s",
			StyleReasoning:      "その役割のため: %s",
			StyleDebug:          "%s から始める",
		},
		genericWrong: []string{
			"ログ出力の整形のみを行います。",
			"参照用に残された未使用のレガシーコードです。",
			"ビルドツールチェーンを設定します。",
			"静的ドキュメントページを生成します。",
			"OS シグナルを管理します。",
			"実装待ちのプレースホルダーです。",
		},
		stepTitles: [4]string{
			"アーキテクチャを理解する",
			"主要な抽象を学ぶ",
			"補助ロジックを追う",
			"学んだことを定着させる",
		},
		stepDescriptions: [4]string{
			"まず全体の構成から: %s。",
			"主要なクラスと関数を掘り下げる: %s。",
			"残りのロジックをたどる: %s。",
			"復習して定着させる: %s。",
		},
		narrative:            "主要な概念は %s で、%d 個のファイルから抽出されました。",
		fallbackCardQuestion: "%s の役割は何ですか?",
		fallbackCardAnswer:   "%s を読んで内容を要約してください。",
		fallbackStepTitle:    "選択されたファイルを読む",
		fallbackNarrative:    "明確な概念は抽出されませんでした。選択されたファイルを直接確認してください。",
	},
}

// templatesFor returns the table for lang, defaulting to English for any
// unknown code.
func templatesFor(lang Language) templateSet {
	if t, ok := templates[lang]; ok {
		return t
	}
	return templates[LangEnglish]
}
