package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Menu button labels; the router matches incoming text against these.
const (
	btnToday    = "⏳ Bugungi vaqtlar"
	btnDuaIftar = "🍽 Og‘iz ochish duosi"
	btnDuaSahar = "🌙 Og‘iz yopish duosi"
	btnCity     = "📍 Shahar"
	btnReminder = "🔔 Eslatma sozlash"
	btnCalendar = "📆 Ramazon taqvimi"
	btnStop     = "🛑 To‘xtatish"
)

const (
	welcomeText = "Assalomu alaykum! 🌙\n\n" +
		"Men Ramazon botiman: imsak va iftor vaqtlarini ko‘rsataman, " +
		"jonli countdown yuritaman va vaqtidan oldin eslatib turaman.\n\n" +
		"Menyudan tanlang yoki /ramadan buyrug‘ini yuboring."

	groupHelpText = "Guruhda ishlatish uchun: /ramadan — shu chatga bugungi " +
		"vaqtlar va jonli countdown chiqadi. Eslatmani to‘xtatish: 🛑 To‘xtatish."

	duaIftarText = "🍽 Og‘iz ochish duosi:\n\n" +
		"Allohumma laka sumtu va bika amantu va a’layka tavakkaltu va " +
		"a’la rizqika aftartu.\n\n" +
		"Ma’nosi: Ey Alloh, Sening roziliging uchun ro‘za tutdim, Senga iymon " +
		"keltirdim, Senga tavakkal qildim va Sening rizqing bilan iftor qildim."

	duaSaharText = "🌙 Og‘iz yopish duosi (niyat):\n\n" +
		"Navaytu an asuma savma shahri ramazona minal fajri ilal mag‘ribi, " +
		"xolisan lillahi ta’alo.\n\n" +
		"Ma’nosi: Ramazon oyining ro‘zasini subhdan to kun botguncha tutishni " +
		"Alloh taolo uchun xolis niyat qildim."

	cityPromptText       = "Shaharni tanlang:"
	cityCustomPromptText = "✍️ Shahar nomini yozing (masalan: Tashkent yoki Samarkand)."
	citySavedFmt         = "✅ Shahar saqlandi: %s"
	cityInvalidText      = "❌ Bu shahar uchun vaqtlar topilmadi. Boshqa nom yozib ko‘ring."

	reminderPromptText = "Necha minut oldin eslatsin? (Default: 10)"
	reminderSavedFmt   = "✅ Saqlandi: %d minut oldin eslatadi."

	calendarPromptText = "Taqvim uchun shaharni tanlang:"
	calendarErrText    = "❌ Taqvimni olishda xatolik. Keyinroq urinib ko‘ring."

	todayFmt = "📍 %s\n\n" +
		"🌙 Og‘iz yopish (Imsak): %s\n" +
		"🍽 Og‘iz ochish (Maghrib): %s\n\n" +
		"Bot sahar/iftordan oldin avtomatik countdownni yoqadi."

	ramadanFmt = "📍 %s\n" +
		"🌙 Og‘iz yopish (Imsak): %s\n" +
		"🍽 Og‘iz ochish (Maghrib): %s\n\n" +
		"⏳ Countdown boshlanmoqda…"

	timesErrText = "❌ Vaqtlarni olishda xatolik. Birozdan so‘ng qayta urinib ko‘ring."
	stoppedText  = "🛑 To‘xtatildi."
	profileErr   = "❌ Xatolik yuz berdi. Keyinroq urinib ko‘ring."
)

// cities pairs the aladhan lookup name with the label shown to users.
var cities = []struct {
	Query string
	Label string
}{
	{"Tashkent", "Toshkent"},
	{"Samarkand", "Samarqand"},
	{"Bukhara", "Buxoro"},
	{"Andijan", "Andijon"},
	{"Fergana", "Farg‘ona"},
	{"Namangan", "Namangan"},
	{"Jizzakh", "Jizzax"},
	{"Navoi", "Navoiy"},
	{"Gulistan", "Sirdaryo (Guliston)"},
	{"Karshi", "Qashqadaryo (Qarshi)"},
	{"Termez", "Surxondaryo (Termiz)"},
	{"Urgench", "Xorazm (Urganch)"},
	{"Nukus", "Qoraqalpog‘iston (Nukus)"},
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnToday),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnDuaIftar),
			tgbotapi.NewKeyboardButton(btnDuaSahar),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCity),
			tgbotapi.NewKeyboardButton(btnReminder),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCalendar),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func stopMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStop),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func reminderInlineKeyboard(minutes int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➖ 5", "rem:-5"),
			tgbotapi.NewInlineKeyboardButtonData(fmtMinutes(minutes), "rem:noop"),
			tgbotapi.NewInlineKeyboardButtonData("➕ 5", "rem:+5"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Saqlash", "rem:save"),
		),
	)
}

func cityInlineKeyboard(prefix string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range cities {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Label, prefix+":"+c.Query),
		))
	}
	if prefix == "city" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✍️ O‘zim yozaman", "city:custom"),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
