package session

// Notice identifies a user-visible message that is shown next to a degraded
// result.
type Notice string

const (
	NoticeTeluguSpeechFallback Notice = "telugu_speech_fallback"
	NoticeTranslationFailed    Notice = "translation_failed"
	NoticeBasicImageAnalysis   Notice = "basic_image_analysis"
	NoticeLocalRecipes         Notice = "local_recipes"
	NoticeSaveFailed           Notice = "save_failed"
)

var notices = map[Notice]map[Language]string{
	NoticeTeluguSpeechFallback: {
		English: "Telugu TTS not available, using English",
		Telugu:  "తెలుగు ఆడియో అందుబాటులో లేదు, ఆంగ్లంలో వినిపిస్తున్నాం",
	},
	NoticeTranslationFailed: {
		English: "Translation failed, showing the original text",
		Telugu:  "అనువాదం విఫలమైంది, మూల పాఠ్యం చూపుతున్నాం",
	},
	NoticeBasicImageAnalysis: {
		English: "No API keys available. Using basic image analysis.",
		Telugu:  "API కీలు అందుబాటులో లేవు. ప్రాథమిక చిత్ర విశ్లేషణ ఉపయోగిస్తున్నాం.",
	},
	NoticeLocalRecipes: {
		English: "Recipe service unavailable, showing suggestions from local templates",
		Telugu:  "వంటకాల సేవ అందుబాటులో లేదు, స్థానిక నమూనాల నుండి సూచనలు చూపుతున్నాం",
	},
	NoticeSaveFailed: {
		English: "The change was applied but could not be saved",
		Telugu:  "మార్పు వర్తించబడింది కానీ సేవ్ చేయడం సాధ్యం కాలేదు",
	},
}

// Text returns the notice in the session language, falling back to English.
func (s Session) Text(n Notice) string {
	msgs, ok := notices[n]
	if !ok {
		return string(n)
	}
	if msg, ok := msgs[s.Language]; ok {
		return msg
	}
	return msgs[English]
}
