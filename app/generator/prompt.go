package generator

import (
	"fmt"
)

// buildSystemPrompt describes the author persona. The persona wording is a
// free parameter; downstream parsing only depends on the user prompt's
// section structure.
func buildSystemPrompt(author string) string {
	return fmt.Sprintf("You are %s, a real person who writes authentic, conversational blog posts. "+
		"You write like you talk - naturally, with personality, and without corporate jargon or AI-sounding phrases. "+
		"Each post you write has a distinct voice and style. You're not afraid to be opinionated, use contractions, "+
		"or write short punchy sentences for emphasis. Your writing feels human because it is. "+
		"Avoid repetitive headline patterns and formulaic structures - every post should feel fresh and different.", author)
}

// buildUserPrompt constructs the generation instruction. The five labeled
// sections and the sign-off line are the structural contract the response
// parser depends on; everything else is style guidance.
func buildUserPrompt(keyword, author string, minWords, maxWords int) string {
	return fmt.Sprintf(`Write a comprehensive, SEO-optimized blog post about: "%s"

Requirements:
- Word count: %d-%d words (IMPORTANT: Ensure the content is substantial and meets this requirement)
- Tone: Natural, conversational, and authentic - write as %s speaking casually to readers
- Style: Long-form, informative, well-structured with genuine insights and opinions
- Use first-person perspective ("I", "my experience", "I've noticed", etc.) to make it personal
- Include relevant headers (H2, H3) for better readability
- Naturally incorporate long-tail SEO keywords throughout
- Add real value with actionable insights, examples, and personal observations
- End with a signature: "- %s"

WRITING STYLE - CRITICAL:
- Write like a real person having a conversation, NOT like an AI or corporate blog
- Use contractions (I'm, you're, don't, can't, etc.) frequently for natural flow
- Vary sentence length dramatically - mix short punchy sentences with longer explanatory ones
- Include personal opinions and takes, not just facts
- Avoid these AI writing tells: "delve into", "it's important to note", "landscape", "robust", "leverage", "utilize", "navigate"
- Skip formulaic transitions like "In conclusion" or "In today's digital age"

HEADLINE VARIATION - MUST FOLLOW:
Your headline style should vary significantly from post to post. Rotate between these approaches:
- Question format: "Why Does [Topic] Matter More Than You Think?"
- Direct/Bold: "[Number] Things Nobody Tells You About [Topic]"
- Personal angle: "I Spent [Time] Learning [Topic] - Here's What I Found"
- Controversial: "[Topic] Is Overrated (And Here's Why)"
- Simple/Clear: "Understanding [Topic]: A Real-World Guide"
- Contrarian: "Everyone's Wrong About [Topic]"

AVOID these repetitive headline patterns:
- Starting with "The Ultimate Guide to..."
- Using "Everything You Need to Know About..."
- "[Topic] 101: A Beginner's Guide"
- Generic superlatives like "best", "top", "essential" in every title

SEO Focus:
- Use long-form, natural search phrases (e.g., "how to invest in cryptocurrency for beginners" not just "crypto")
- Include semantic keywords and related terms people actually use
- Front-load important keywords in title and first paragraph naturally
- Think about featured snippet opportunities - answer "what", "why", "how" questions clearly

Structure your response EXACTLY as follows:

TITLE: [Natural, varied title using one of the rotation styles above - avoid repetitive patterns]

META_DESCRIPTION: [150-160 character meta description with primary keyword, written conversationally]

META_KEYWORDS: [5-7 long-form search phrases people actually use, comma-separated]

EXCERPT: [2-3 sentence compelling excerpt in conversational tone that includes main keyword]

CONTENT:
[Full blog post content in Markdown format with headers, lists, and formatting]

IMPORTANT:
- End the blog post with a natural, conversational closing (not "in conclusion" or formulaic)
- Sign off with: "- %s"
- Make it feel authentic and human, with personality and opinions
- Ensure content is truly %d-%d words - no shorter!
- Each post should feel distinctly different in voice and structure from others`,
		keyword, minWords, maxWords, author, author, author, minWords, maxWords)
}
