package dialogue

import "fmt"

// Menu labels. The start and edit labels double as triggers.
const (
	StartButton = "📥 Старт"
	EditButton  = "✏️ Редактировать"
	ShareButton = "📱 Отправить номер"

	StartCommand = "/start"
	EditCommand  = "/edit"
)

// Messages holds every reply text. Fields ending in Format take one %s.
type Messages struct {
	Start                string
	InvalidPhone         string
	AlreadySaved         string
	AcceptedFormat       string
	CommentSaved         string
	NoNumbers            string
	ChooseNumber         string
	NotFound             string
	CurrentCommentFormat string
	EmptyComment         string
	CommentUpdated       string
	NeedText             string
	RecordGone           string
	TryAgain             string
	IdleHint             string
}

// DefaultMessages returns the Russian reply set. Empty support contacts drop
// the matching paragraph.
func DefaultMessages(supportPhone, supportLink string) Messages {
	start := "📷 Привет!\n\n" +
		"1️⃣ Укажите номер телефона (тот же, что назвали фотографу):\n\n" +
		"Пример: +79991234567\n\n" +
		"2️⃣ После ввода номер будет сохранён\n\n" +
		"3️⃣ Напоминаем, что электронная версия фотографий отправляется в течение двух дней после мероприятия. Ожидайте"
	if supportPhone != "" {
		start += fmt.Sprintf("\n\nЕсли прошло более двух суток, а фотографии не были получены — напишите нам:\n%s", supportPhone)
	}

	saved := "✅ Ваш комментарий сохранён.\n📷 Спасибо! Мы учтём ваши пожелания."
	if supportLink != "" {
		saved += fmt.Sprintf("\n\nЕсли прошло более двух суток и фото не пришли — напишите нам:\n\n%s", supportLink)
	}

	return Messages{
		Start:                start,
		InvalidPhone:         "❌ Неверный формат номера. Пример: +79991234567",
		AlreadySaved:         "ℹ️ Этот номер уже сохранён. Чтобы изменить комментарий, используйте " + EditButton,
		AcceptedFormat:       "✅ Ваш номер принят и записан:\n%s\n\n✍️ Напишите комментарий: какие фото вам прислать",
		CommentSaved:         saved,
		NoNumbers:            "❌ У вас пока нет сохранённых номеров.",
		ChooseNumber:         "✏️ Выберите номер для редактирования комментария:",
		NotFound:             "❌ Номер не найден. Выберите правильный номер.",
		CurrentCommentFormat: "📄 Текущий комментарий:\n%s\n✍️ Введите новый комментарий:",
		EmptyComment:         "—",
		CommentUpdated:       "✅ Комментарий обновлён.",
		NeedText:             "✍️ Отправьте комментарий текстом.",
		RecordGone:           "ℹ️ Номер больше не найден в таблице. Начните заново: " + StartButton,
		TryAgain:             "⚠️ Не удалось обратиться к таблице. Попробуйте ещё раз чуть позже.",
		IdleHint:             "Выберите действие в меню: " + StartButton + " — сохранить номер, " + EditButton + " — изменить комментарий.",
	}
}
