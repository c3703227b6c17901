package handler

// User-facing message texts, kept byte-compatible with the bot this one
// replaces.
const (
	msgChooseType     = "<b>Qaysi turdagi operatsiya?</b>"
	msgChooseCategory = "<b>Kotegoriyani tanlang:</b>"
	msgChooseProject  = "<b>Loyihani tanlang:</b>"
	msgTypeProject    = "<b>Loyiha nomini yozing:</b>"
	msgChooseCurrency = "<b>Valyutani tanlang:</b>"
	msgEnterAmount    = "<b>Summani kiriting:</b>"
	msgChoosePayType  = "<b>To'lov turini tanlang:</b>"
	msgEnterComment   = "<b>Izoh kiriting (yoki пропустите):</b>"

	msgRecorded  = "✅ Ma'lumot muvaffaqiyatli yuborildi!"
	msgCancelled = "❌ Операция отменена."

	msgAskName         = "Ismingizni kiriting:"
	msgAskPhone        = "Telefon raqamingizni yuboring:"
	msgApplicationSent = "⏳ Arizangiz adminga yuborildi. Iltimos, kuting."

	msgPending      = "⏳ Sizning arizangiz ko‘rib chiqilmoqda. Iltimos, kuting."
	msgDenied       = "❌ Sizga botdan foydalanishga ruxsat berilmagan."
	msgAccessGiven  = "✅ Sizga botdan foydalanishga ruxsat berildi! /start"
	msgReApproved   = "✅ Sizga botdan foydalanishga yana ruxsat berildi! /start"
	msgBlockedByOp  = "❌ Sizga botdan foydalanishga ruxsat berilmagan. (Admin tomonidan bloklandi)"
	msgAdminsOnly   = "Faqat admin uchun!"
	msgNameExists   = "❗️ Bu nom allaqachon mavjud."
	msgInternalErr  = "Xatolik yuz berdi. Keyinroq urinib ko‘ring."
	msgUserApproved = "✅ Foydalanuvchi tasdiqlandi."
	msgUserDenied   = "❌ Foydalanuvchi rad etildi."
)
