// Package messages collects every user-facing string in one place.
package messages

// Role selection and menus.
const (
	WelcomeFmt       = "مرحباً %s! 👋\nيرجى اختيار دورك:"
	RoleInstructor   = "👨‍🏫 معلم"
	RoleLearner      = "👨‍🎓 طالب"
	InstructorHello  = "مرحباً أيها المعلم! 👨‍🏫\nماذا تريد أن تفعل؟"
	LearnerHello     = "مرحباً أيها الطالب! 👨‍🎓\nماذا تريد أن تفعل؟"
	InstructorMenu   = "👨‍🏫 قائمة المعلم:"
	LearnerMenu      = "👨‍🎓 قائمة الطالب:"
	BtnAddQuestion   = "➕ إضافة سؤال"
	BtnViewQuestions = "📋 عرض الأسئلة"
	BtnStats         = "📊 إحصائيات"
	BtnStartQuiz     = "📝 بدء الاختبار"
	BtnNewQuiz       = "📝 اختبار جديد"
	BtnMyResults     = "📊 نتائجي"
	BtnMainMenu      = "🏠 القائمة الرئيسية"
	BtnBack          = "رجوع"
)

// Authoring flow.
const (
	ChooseKind        = "اختر نوع السؤال:"
	KindTrueFalse     = "صح أو خطأ"
	KindMultiple      = "اختيار من متعدد"
	KindChosenFmt     = "تم اختيار: %s\nالآن أرسل السؤال كصورة أو كرسالة نصية:"
	PromptSavedText   = "تم حفظ السؤال!"
	PromptSavedPhoto  = "تم استلام الصورة!"
	AskCorrectAnswer  = "الآن اختر الإجابة الصحيحة:"
	AskOptions        = "الآن أرسل الخيارات في رسالة واحدة كل خيار في سطر:\nمثال:\nأ) الخيار الأول\nب) الخيار الثاني\nج) الخيار الثالث\nد) الخيار الرابع\n\nثم أرسل الحرف الصحيح (مثل: أ)"
	OptionsSaved      = "تم حفظ الخيارات!\nالآن أرسل الحرف الصحيح (مثل: أ):"
	BadOptions        = "⚠️ يجب أن يحتوي السؤال على خيار واحد حتى أربعة خيارات. أرسل الخيارات مرة أخرى:"
	BadCorrectKey     = "⚠️ الحرف غير صالح. أرسل الحرف الصحيح (مثل: أ):"
	QuestionAddedFmt  = "✅ تم إضافة السؤال بنجاح!\nرقم السؤال: %s\nيمكنك العودة للقائمة الرئيسية بـ /start"
	QuestionAddedTF   = "✅ تم إضافة السؤال بنجاح!\nرقم السؤال: %s\nالإجابة الصحيحة: %s"
	NoQuestionsYet    = "📭 لم تقم بإضافة أي أسئلة بعد."
	YourQuestionsFmt  = "📚 لديك %d سؤال:\n\n"
	StatsHeader       = "📊 إحصائياتك:\n\n"
	StatsQuestionsFmt = "📚 عدد الأسئلة: %d\n"
)

// Quiz flow.
const (
	NoQuestions      = "⚠️ لا توجد أسئلة متاحة حالياً."
	QuestionOfFmt    = "السؤال %d من %d\n\n"
	PickAnswer       = "اختر الإجابة الصحيحة:"
	TypeAnswer       = "أرسل إجابتك:"
	AnswerCorrect    = "✅ إجابة صحيحة!"
	AnswerWrong      = "❌ إجابة خاطئة!"
	LoadingNext      = "جاري تحميل السؤال التالي..."
	QuizFinished     = "🏁 انتهى الاختبار!\n\n"
	ScoreFmt         = "🎯 النتيجة: %d/%d\n"
	PercentFmt       = "📊 النسبة: %.1f%%\n\n"
	TierTop          = "🎉 ممتاز! إجابات صحيحة كلها!\n"
	TierHigh         = "👍 جيد جداً!\n"
	TierMiddle       = "😊 ليس سيئاً!\n"
	TierLow          = "📚 تحتاج للمزيد من المذاكرة!\n"
	NoResults        = "📭 لم تأخذ أي اختبارات بعد."
	YourResultsFmt   = "📊 نتائجك (%d اختبار):\n\n"
	ResultLineFmt    = "%d. تاريخ: %s\n   النتيجة: %d/%d\n   النسبة: %.1f%%\n\n"
	AverageFmt       = "📈 المعدل العام: %.1f%%"
	DisplayTrueBtn   = "صح"
	DisplayFalseBtn  = "خطأ"
	PhotoQuestionAlt = "سؤال بصورة"
)

// Errors and help.
const (
	GenericFailure = "❌ حدث خطأ ما. يرجى المحاولة مرة أخرى."
	StorageFailure = "⚠️ الخدمة غير متاحة حالياً. يرجى المحاولة لاحقاً."
	Help           = `🤖 بوت الاختبارات التعليمية

👨‍🏫 للمعلم:
1. اختر "معلم" عند بدء البوت
2. استخدم "إضافة سؤال" لرفع أسئلة جديدة
3. يمكنك رفع الصور أو كتابة الأسئلة نصياً
4. اختر نوع السؤال (صح/خطأ أو اختيار من متعدد)

👨‍🎓 للطالب:
1. اختر "طالب" عند بدء البوت
2. استخدم "بدء الاختبار" للإجابة على الأسئلة
3. ستظهر لك النتيجة فور انتهاء الاختبار
4. يمكنك مشاهدة نتائجك السابقة

أوامر عامة:
/start - إعادة بدء البوت
/help - عرض هذه الرسالة`
)

// KindLabel returns the display label of a question kind token.
func KindLabel(kind string) string {
	switch kind {
	case "true_false":
		return KindTrueFalse
	case "multiple_choice":
		return KindMultiple
	}
	return kind
}
