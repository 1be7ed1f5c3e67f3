package dialogue

const (
	msgThanks          = "😊 Пожалуйста! Обращайся, если нужен еще расчет."
	msgWaitingForData  = "👍 Жду нужные данные!"
	msgWhatToCalculate = "😊 Что будем рассчитывать?"
	msgContinue        = "👍 Продолжаем!"
	msgWhatIsWrong     = "🤔 Что именно не так? Давай исправим!"
	msgNewCalculation  = "🚗 Отлично! Какой автомобиль будем рассчитывать?"
	msgNotUnderstood   = "🤔 Не понял. Напиши например: 'BMW X3 1998 см³'"
	msgAskVolume       = "❓ Какой объем двигателя в см³?"
	msgPricingFailed   = "❌ Не удалось определить тариф для данного объема двигателя. Попробуй указать объем еще раз."
	msgVisionOff       = "📷 Распознавание фото сейчас недоступно.\n\nНапиши данные текстом, например: 'BMW X3 1998 см³'"
	msgPhotoFailed     = "😔 %s\n\nПопробуй написать данные текстом или пришли более четкое фото."
	msgRecognizedData  = "🔍 Понял: %s"
	msgRecognizedCC    = "🔍 Объем двигателя: %d см³"
	msgUnderstood      = "🤔 Понял"
)
