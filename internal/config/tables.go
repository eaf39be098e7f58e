package config

import (
	"github.com/likhanovw/redTripwireBot/internal/keyword"
	"github.com/likhanovw/redTripwireBot/internal/menu"
)

// Static configuration tables consumed, but not owned, by the conversation
// core: screen texts, button labels, keyword rules, document names and the
// menu graph. All read-only after startup.

// Messages holds every text the bot displays, keyed by screen.
var Messages = map[string]string{
	// Main menu and navigation
	"welcome": "приветственное сообщение",
	"docs":    "ссылки на доки",

	// Consent flow
	"consent_prompt": `📋 Добро пожаловать!

Для предоставления качественных услуг нам необходимо обрабатывать ваши персональные данные:
• Имя
• Номер телефона

Данные хранятся в защищенном виде и используются только для связи с вами.

Согласны ли вы на обработку персональных данных?`,
	"consent_declined":    "Понятно! Без согласия мы не можем обрабатывать ваши данные.\nВы всегда можете изменить свое решение позже.",
	"consent_thanks":      "Спасибо! Теперь предоставьте ваш номер телефона для связи:",
	"consent_save_failed": "❌ Ошибка сохранения данных. Попробуйте позже.",
	"contact_prompt":      "Пожалуйста, нажмите кнопку 'Поделиться' для предоставления вашего номера телефона:",
	"contact_saved":       "Спасибо! Ваше имя: %s\nВаш номер: %s\n\nДанные успешно сохранены. Мы свяжемся с вами в ближайшее время!",

	// Contact and support
	"contact_us": "вот наши контакты напишите нам",

	// File handling
	"doc_caption":     "📄 Держите %s",
	"doc_sent":        "✅ %s отправлен успешно!",
	"doc_not_found":   "❌ Файл %s не найден.\nПожалуйста, убедитесь, что файл существует в директории документов.",
	"doc_error":       "❌ Ошибка при отправке %s. Пожалуйста, попробуйте позже.",
	"keyword_caption": "📄 Вот PDF файл, связанный с вашим запросом: %s",

	// Menu screens
	"calculation":        "🧮 Заявка на расчет: выберите опцию",
	"strategic":          "🎯 Стратегическая сессия: выберите опцию",
	"materials":          "Выбор материала из списка",
	"materials_file_2":   "📄 Второй файл: функциональность в разработке",
	"materials_file_3":   "📄 Третий файл: функциональность в разработке",
	"has_product":        "✅ Есть продукт: выберите опцию",
	"no_product":         "❌ Нет продукта: выберите опцию",
	"own_team":           "👥 Своя команда: выберите опцию",
	"outstaff":           "👨‍💼 Аутстафф: выберите опцию",
	"outsource":          "🏢 Аутсорс: выберите опцию",
	"no_team":            "🚫 Нет никого: выберите опцию",
	"fully_own":          "🛠️ Полностью сами: выберите опцию",
	"own_plus_external":  "🔧 Сами + усиление извне: выберите опцию",
	"custom_development": "📋 Заказная разработка: выберите опцию",
	"buy_customize":      "🛒 Покупка готового продукта с кастомизацией: выберите опцию",

	// Feature explanations
	"useful_files": `📁 Полезные файлы

Чтобы получить нужный файл, отправьте мне сообщение с ключевым словом.

**Доступные ключевые слова:**
• аудит, процессы → audit_processes.pdf
• продукт, продукта → audit_product.pdf
• первый, файл → frst_file.pdf

Просто напишите любое из этих слов, и я отправлю соответствующий PDF файл!`,

	// Help system
	"help": `🤖 **TripwireBot Help**

**Available Commands:**
/start - Start the bot and see available options
/help - Show this help message
/docs - Show documentation links

**How to use:**
1. Click "Start" to begin
2. Choose an option from the buttons
3. The bot will guide you through the process

**📁 Полезные файлы:**
1. Нажмите "Полезные файлы" в главном меню
2. Отправьте сообщение с ключевым словом:
   • аудит, процессы → audit_processes.pdf
   • продукт, продукта → audit_product.pdf
   • первый, файл → frst_file.pdf
3. Получите соответствующий PDF файл

**Need more help?** Contact the bot administrator.`,
}

// Buttons holds every button label used throughout the bot.
var Buttons = map[string]string{
	// Main menu buttons
	"useful_files": "Полезные файлы",
	"calculation":  "Заявка на расчет",
	"strategic":    "Заявка на стратегическую сессию",
	"materials":    "Полезные материалы",
	"my_data":      "📊 Мои данные",

	// Navigation buttons
	"back":      "Назад",
	"main_menu": "← В начало",

	// Consent flow buttons
	"consent_yes":   "✅ Согласен",
	"consent_no":    "❌ Не согласен",
	"consent_retry": "🔄 Попробовать снова",
	"share_contact": "📱 Поделиться",

	// Feature buttons
	"get_brief":  "📋 Получить бриф",
	"contact_us": "📞 Связаться",
}

// KeywordRules maps message keywords to document files. Order decides
// first-match order when a message triggers several rules.
var KeywordRules = []keyword.Rule{
	// Russian keywords
	{Keyword: "аудит", DocumentID: "audit_processes.pdf"},
	{Keyword: "процессы", DocumentID: "audit_processes.pdf"},
	{Keyword: "продукт", DocumentID: "audit_product.pdf"},
	{Keyword: "продукта", DocumentID: "audit_product.pdf"},
	{Keyword: "первый", DocumentID: "frst_file.pdf"},
	{Keyword: "файл", DocumentID: "frst_file.pdf"},

	// English keywords (for international users)
	{Keyword: "audit", DocumentID: "audit_processes.pdf"},
	{Keyword: "processes", DocumentID: "audit_processes.pdf"},
	{Keyword: "product", DocumentID: "audit_product.pdf"},
	{Keyword: "first", DocumentID: "frst_file.pdf"},
	{Keyword: "file", DocumentID: "frst_file.pdf"},
}

// Documents maps logical document IDs to filenames. IDs not listed here are
// filenames themselves.
var Documents = map[string]string{
	"brief": "RED.brief.odt",
}

// StartNode is the main menu node ID.
const StartNode = "start"

// MenuNodes returns the full navigation graph definition. Back edges are
// explicit and several jump to a non-parent ancestor: shortcut navigation,
// not LIFO backtracking.
func MenuNodes() []*menu.Node {
	return []*menu.Node{
		{
			ID:      StartNode,
			TextKey: "welcome",
			Edges: []menu.Edge{
				{Label: Buttons["useful_files"], Target: "useful_files"},
				{Label: Buttons["calculation"], Target: "calculation"},
				{Label: Buttons["strategic"], Target: "strategic"},
				{Label: Buttons["materials"], Target: "materials"},
				{Label: Buttons["my_data"], Target: "my_data"},
			},
		},
		{
			ID:      "useful_files",
			TextKey: "useful_files",
			Edges:   []menu.Edge{{Label: Buttons["back"], Target: StartNode}},
		},
		{
			ID:      "calculation",
			TextKey: "calculation",
			Edges: []menu.Edge{
				{Label: Buttons["get_brief"], Target: "get_brief"},
				{Label: Buttons["contact_us"], Target: "contact_us"},
				{Label: Buttons["back"], Target: StartNode},
			},
		},
		{
			ID:     "get_brief",
			Action: menu.Action{Kind: menu.ActionSendDocument, DocID: "brief"},
			Edges:  []menu.Edge{{Label: Buttons["main_menu"], Target: StartNode}},
		},
		{
			ID:      "contact_us",
			TextKey: "contact_us",
			Action:  menu.Action{Kind: menu.ActionShowText},
			Edges:   []menu.Edge{{Label: Buttons["back"], Target: "calculation"}},
		},
		{
			ID:      "strategic",
			TextKey: "strategic",
			Edges: []menu.Edge{
				{Label: "Есть продукт", Target: "has_product"},
				{Label: "Нет продукта", Target: "no_product"},
				{Label: Buttons["back"], Target: StartNode},
			},
		},
		{
			ID:      "has_product",
			TextKey: "has_product",
			Edges: []menu.Edge{
				{Label: "Своя команда", Target: "own_team"},
				{Label: "Аутстафф", Target: "outstaff"},
				{Label: "Аутсорс", Target: "outsource"},
				{Label: "Нет никого", Target: "no_team"},
				// Shortcut past the strategic screen straight to the top.
				{Label: Buttons["back"], Target: StartNode},
			},
		},
		{
			ID:      "no_product",
			TextKey: "no_product",
			Edges: []menu.Edge{
				{Label: "полностью сами", Target: "fully_own"},
				{Label: "Сами + усиление извне", Target: "own_plus_external"},
				{Label: "Заказная разработка", Target: "custom_development"},
				{Label: "Покупка готового продукта с кастомизацией", Target: "buy_customize"},
				{Label: Buttons["back"], Target: StartNode},
			},
		},
		{
			ID:      "own_team",
			TextKey: "own_team",
			Edges: []menu.Edge{
				{Label: "Аудит процессов + рекомендация проджекта", Target: "audit_processes"},
				{Label: "Аудит продукта + рекоммендации продакта", Target: "audit_product"},
				{Label: Buttons["back"], Target: "has_product"},
			},
		},
		{
			ID:      "outstaff",
			TextKey: "outstaff",
			Edges: []menu.Edge{
				{Label: "аудит работы привлеченных специалистов + рекомендации проджекта и/или HR", Target: "audit_outstaff"},
				{Label: "Аудит продукта + рекоммендации продакта", Target: "audit_product"},
				{Label: Buttons["back"], Target: "has_product"},
			},
		},
		{
			ID:      "outsource",
			TextKey: "outsource",
			Edges:   []menu.Edge{{Label: Buttons["back"], Target: "has_product"}},
		},
		{
			ID:      "no_team",
			TextKey: "no_team",
			Edges:   []menu.Edge{{Label: Buttons["back"], Target: "has_product"}},
		},
		{
			ID:      "fully_own",
			TextKey: "fully_own",
			Edges:   []menu.Edge{{Label: Buttons["back"], Target: "no_product"}},
		},
		{
			ID:      "own_plus_external",
			TextKey: "own_plus_external",
			Edges:   []menu.Edge{{Label: Buttons["back"], Target: "no_product"}},
		},
		{
			ID:      "custom_development",
			TextKey: "custom_development",
			Edges:   []menu.Edge{{Label: Buttons["back"], Target: "no_product"}},
		},
		{
			ID:      "buy_customize",
			TextKey: "buy_customize",
			Edges:   []menu.Edge{{Label: Buttons["back"], Target: "no_product"}},
		},
		// Audit documents are reachable from both own_team and outstaff; the
		// back edge returns to has_product, not the immediate parent.
		{
			ID:     "audit_processes",
			Action: menu.Action{Kind: menu.ActionSendDocument, DocID: "audit_processes.pdf"},
			Edges:  []menu.Edge{{Label: Buttons["back"], Target: "has_product"}},
		},
		{
			ID:     "audit_product",
			Action: menu.Action{Kind: menu.ActionSendDocument, DocID: "audit_product.pdf"},
			Edges:  []menu.Edge{{Label: Buttons["back"], Target: "has_product"}},
		},
		{
			ID:     "audit_outstaff",
			Action: menu.Action{Kind: menu.ActionSendDocument, DocID: "audit_outstaff_specialists.pdf"},
			Edges:  []menu.Edge{{Label: Buttons["back"], Target: "has_product"}},
		},
		{
			ID:      "materials",
			TextKey: "materials",
			Edges: []menu.Edge{
				{Label: "первый файл", Target: "materials_file_1"},
				{Label: "второй файл", Target: "materials_file_2"},
				{Label: "третий файл", Target: "materials_file_3"},
				{Label: Buttons["back"], Target: StartNode},
			},
		},
		{
			ID:     "materials_file_1",
			Action: menu.Action{Kind: menu.ActionSendDocument, DocID: "frst_file.pdf"},
			Edges:  []menu.Edge{{Label: Buttons["back"], Target: "materials"}},
		},
		{
			ID:      "materials_file_2",
			TextKey: "materials_file_2",
			Edges:   []menu.Edge{{Label: Buttons["back"], Target: "materials"}},
		},
		{
			ID:      "materials_file_3",
			TextKey: "materials_file_3",
			Edges:   []menu.Edge{{Label: Buttons["back"], Target: "materials"}},
		},
		{
			ID:     "my_data",
			Action: menu.Action{Kind: menu.ActionShowStats},
			Edges:  []menu.Edge{{Label: Buttons["main_menu"], Target: StartNode}},
		},
	}
}
