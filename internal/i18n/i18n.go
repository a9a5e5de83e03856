// Package i18n holds the fixed bilingual string table for chat-facing
// messages. The locale is an explicit value threaded through calls, not
// process-wide state, so lookups stay pure.
package i18n

import "littlestar/internal/models"

const (
	KeyWelcomeChat    = "welcome_chat_message"
	KeyTypingGuidance = "typing_guidance_message"
	KeyBlockedInput   = "blocked_input_message"
	KeyNoMatch        = "no_match_message"
	KeyTopicMatch     = "topic_match_prefix"
)

var english = map[string]string{
	KeyWelcomeChat:    "Hello! I'm here to help you learn about safe and healthy topics. You can ask me questions or click the Topics button to see what we can learn about together!",
	KeyTypingGuidance: "Hi! I see you're typing, but the best way to learn is by clicking the '📚 Topics' button above! There you can explore different topics and questions. Try clicking it to see all the available learning topics! 😊",
	KeyBlockedInput:   "I'm here to help you learn about safe and healthy topics. Please ask about body parts, personal safety, growing up, or healthy relationships.",
	KeyNoMatch:        "I'd love to help you learn! You can ask about:\n• Body parts and keeping clean\n• Personal safety and boundaries\n• Growing up and changes\n• Healthy friendships and relationships\n\nWhat would you like to know more about?",
	KeyTopicMatch:     "Great question! Here are some topics about %s that might help:\n\n",
}

// Burmese translations exist for a subset of keys; anything missing
// falls back to English.
var burmese = map[string]string{
	KeyWelcomeChat:    "မင်္ဂလာပါ! ကျွန်တော်က လုံခြုံပြီး ကျန်းမာသော အကြောင်းအရာများအကြောင်း သင်ယူရန် ကူညီပေးရန် ဤနေရာတွင် ရှိပါတယ်။ သင်မေးခွန်းများ မေးနိုင်ပြီး သို့မဟုတ် ခေါင်းစဉ်များ ခလုတ်ကို နှိပ်ပြီး ကျွန်တော်တို့ အတူတကွ သင်ယူနိုင်သော အရာများကို ကြည့်နိုင်ပါတယ်!",
	KeyTypingGuidance: "မင်္ဂလာပါ! သင်ရိုက်နေတာကို မြင်ရပါတယ်၊ သို့သော် အကောင်းဆုံး သင်ယူနည်းမှာ အပေါ်ရှိ '📚 ခေါင်းစဉ်များ' ခလုတ်ကို နှိပ်ခြင်းပါ! ထိုနေရာတွင် မတူညီသော ခေါင်းစဉ်များနှင့် မေးခွန်းများကို လေ့လာနိုင်ပါတယ်။ ရနိုင်သော သင်ယူမှု ခေါင်းစဉ်များကို ကြည့်ရန် ထိုခလုတ်ကို နှိပ်ကြည့်ပါ! 😊",
}

// Text returns the message for key in the given language, falling back to
// English when no translation exists.
func Text(lang models.Language, key string) string {
	if lang == models.LanguageBurmese {
		if s, ok := burmese[key]; ok {
			return s
		}
	}
	if s, ok := english[key]; ok {
		return s
	}
	return key
}
