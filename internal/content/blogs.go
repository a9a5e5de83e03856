package content

import "littlestar/internal/models"

// defaultBlogs returns the fixed set of reading articles. Blogs are not
// age-gated; viewing one is logged as a "Blog" activity.
func defaultBlogs() []models.Blog {
	return []models.Blog{
		{
			ID:          1,
			Title:       "Understanding Your Body",
			Description: "Learn about body parts and keeping clean",
			Category:    "Body Parts",
			Icon:        "🧸",
			Content: "Your body has many different parts, each with its own important job. Some parts are on the outside, like your arms, legs, and face. Others are on the inside, like your heart, lungs, and stomach.\n\n" +
				"It's important to keep all parts of your body clean. This means taking regular baths or showers, washing your hands, and brushing your teeth. Clean bodies stay healthy!\n\n" +
				"Some parts of your body are private. These are parts that are usually covered by clothes. It's okay to talk about these parts with trusted adults like doctors or parents when you need help.",
		},
		{
			ID:          2,
			Title:       "Staying Safe",
			Description: "Important safety tips for children",
			Category:    "Personal Safety",
			Icon:        "🛡️",
			Content: "Personal safety means knowing how to keep yourself safe and comfortable. It's about understanding your boundaries and knowing when something doesn't feel right.\n\n" +
				"Safe touches make you feel good and comfortable, like hugs from family or high-fives from friends. Unsafe touches make you feel uncomfortable, scared, or confused.\n\n" +
				"You always have the right to say 'no' if someone tries to touch you in a way that makes you uncomfortable. It's important to tell a trusted adult if this happens.",
		},
		{
			ID:          3,
			Title:       "Growing Up Changes",
			Description: "What to expect as you grow older",
			Category:    "Growing Up",
			Icon:        "🌱",
			Content: "As you grow up, your body will change slowly over time. These changes are normal and happen to everyone at different times.\n\n" +
				"You might notice changes like getting taller, your voice changing, or new hair growing in different places. These are all normal parts of growing up.\n\n" +
				"You might also feel different emotions or have new thoughts as you get older. This is completely normal and part of becoming an adult.",
		},
		{
			ID:          4,
			Title:       "Making Good Friends",
			Description: "How to build healthy friendships",
			Category:    "Healthy Relationships",
			Icon:        "👫",
			Content: "Good friends are kind, respectful, and make you feel happy and safe. They listen to you, share with you, and help you when you need it.\n\n" +
				"In healthy relationships, people respect each other's feelings, boundaries, and personal space. Everyone should feel comfortable and valued.\n\n" +
				"Good relationships are built on honest communication. It's important to talk about your feelings and listen to others when they share theirs.",
		},
		{
			ID:          5,
			Title:       "Talking to Adults",
			Description: "When and how to ask for help",
			Category:    "Personal Safety",
			Icon:        "👨‍👩‍👧‍👦",
			Content: "There are many trusted adults in your life who can help you learn and answer your questions. These include parents, teachers, doctors, and family members.\n\n" +
				"How you feel about things is important. If something makes you uncomfortable or confused, it's always okay to talk to a trusted adult about it.",
		},
		{
			ID:          6,
			Title:       "Body Boundaries",
			Description: "Understanding personal space and privacy",
			Category:    "Personal Safety",
			Icon:        "🚫",
			Content: "This topic is about learning important things in a safe and comfortable way. Always remember that it's okay to ask questions!\n\n" +
				"You always have the right to say 'no' if someone tries to touch you in a way that makes you uncomfortable. It's important to tell a trusted adult if this happens.",
		},
	}
}
