package provider

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/elonfeng/aihub/internal/store"
	"github.com/elonfeng/aihub/pkg/source"
)

// Item is one curated entry of the canned content set. Its publish time
// is expressed as an age relative to "now" so the set always reads as
// current.
type Item struct {
	Title       string
	Description string
	Category    source.Category
	ImageURL    string
	SourceURL   string
	Age         time.Duration
	IsPremium   bool
	Duration    string
}

// Canned is the fixed, hand-authored alternative to live fetching.
// Premium flags and tutorial durations are editorial decisions baked into
// the set, unlike the live provider's random placeholders.
type Canned struct {
	now func() time.Time
}

// NewCanned creates the canned provider. A nil clock uses time.Now.
func NewCanned(clock func() time.Time) *Canned {
	if clock == nil {
		clock = time.Now
	}
	return &Canned{now: clock}
}

func (c *Canned) Name() string { return "canned" }

func (c *Canned) SourceNames() []string { return []string{"curated"} }

// Items returns the full curated set sorted newest first, with publish
// times anchored to the current clock.
func (c *Canned) Items() []Item {
	items := cannedSet()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Age < items[j].Age
	})
	return items
}

// Fetch converts the curated set to insertable records, carrying the
// per-item premium flag and duration through unchanged.
func (c *Canned) Fetch(ctx context.Context) []store.ContentRecord {
	return lo.Map(c.Items(), func(it Item, _ int) store.ContentRecord {
		return store.ContentRecord{
			Title:       it.Title,
			Description: it.Description,
			Category:    it.Category,
			IsPremium:   it.IsPremium,
			ImageURL:    it.ImageURL,
			Duration:    it.Duration,
		}
	})
}

// CategoryCounts tallies the curated set per category.
func (c *Canned) CategoryCounts() map[source.Category]int {
	return lo.CountValuesBy(c.Items(), func(it Item) source.Category {
		return it.Category
	})
}

// LatestPublished returns the publish time of the freshest curated item.
func (c *Canned) LatestPublished() time.Time {
	items := c.Items()
	if len(items) == 0 {
		return time.Time{}
	}
	return c.now().UTC().Add(-items[0].Age)
}

// Len returns the size of the curated set.
func (c *Canned) Len() int { return len(cannedSet()) }

func cannedSet() []Item {
	return []Item{
		// News
		{
			Title:       "OpenAI GPT-4o Fully Replaces GPT-4 by April 2025",
			Description: "OpenAI announces GPT-4 retirement from ChatGPT by April 30, 2025, with GPT-4o delivering superior performance in writing, coding, and STEM subjects.",
			Category:    source.CategoryNews,
			ImageURL:    "https://images.unsplash.com/photo-1677442136019-21780ecad995?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://openai.com/news/",
			Age:         2 * time.Hour,
		},
		{
			Title:       "Google Gemini 2.5 Pro Sweeps LMArena Leaderboards",
			Description: "Google's latest Gemini 2.5 Pro model achieves world-leading performance across all categories, with Elo scores up 300+ points from first-generation Gemini Pro.",
			Category:    source.CategoryNews,
			ImageURL:    "https://images.unsplash.com/photo-1573804633927-bfcbcd909acd?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://blog.google/technology/google-deepmind/google-gemini-updates-io-2025/",
			Age:         4 * time.Hour,
		},
		{
			Title:       "OpenAI-Jony Ive $6.5B AI Hardware Partnership Announced",
			Description: "Revolutionary collaboration aims to ship 100M AI companion devices starting late 2025, marking OpenAI's entry into consumer hardware market.",
			Category:    source.CategoryNews,
			ImageURL:    "https://images.unsplash.com/photo-1518709268805-4e9042af2176?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://techcrunch.com/",
			Age:         6 * time.Hour,
			IsPremium:   true,
		},
		{
			Title:       "Google AI Mode Reaches 1 Billion Users Globally",
			Description: "Google's AI-powered search overviews now serve 1 billion people worldwide, featuring advanced reasoning and multimodal capabilities that reimagine how we search.",
			Category:    source.CategoryNews,
			ImageURL:    "https://images.unsplash.com/photo-1560472355-536de3962603?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://blog.google/technology/ai/",
			Age:         8 * time.Hour,
		},
		{
			Title:       "ChatGPT Agent Launch: AI That Can Think and Act",
			Description: "OpenAI unveils ChatGPT Agent with ability to think, act, and use tools for complex tasks like research and bookings, marking the shift to agentic AI.",
			Category:    source.CategoryNews,
			ImageURL:    "https://images.unsplash.com/photo-1485827404703-89b55fcc595e?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://help.openai.com/en/articles/6825453-chatgpt-release-notes",
			Age:         12 * time.Hour,
			IsPremium:   true,
		},

		// Research
		{
			Title:       "Gemini 2.0: Native Multimodal Architecture for Agentic Era",
			Description: "Google DeepMind's Gemini 2.0 introduces native multimodal capabilities designed specifically for AI agents, featuring enhanced reasoning and computer-use abilities.",
			Category:    source.CategoryResearch,
			ImageURL:    "https://images.unsplash.com/photo-1559757148-5c350d0d3c56?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://blog.google/technology/google-deepmind/google-gemini-ai-update-december-2024/",
			Age:         3 * time.Hour,
			IsPremium:   true,
		},
		{
			Title:       "OpenAI o3 Series: Advanced Reasoning for Complex Tasks",
			Description: "Latest research on o3-mini and o3-pro models demonstrates breakthrough performance in mathematical reasoning, coding challenges, and scientific problem-solving.",
			Category:    source.CategoryResearch,
			ImageURL:    "https://images.unsplash.com/photo-1551288049-bebda4e38f71?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://openai.com/research/",
			Age:         5 * time.Hour,
			IsPremium:   true,
		},
		{
			Title:       "Trillium TPUs: Sixth-Generation AI Training Architecture",
			Description: "Google's new Trillium TPUs power 100% of Gemini 2.0 training and inference, representing major advances in AI hardware efficiency and scale.",
			Category:    source.CategoryResearch,
			ImageURL:    "https://images.unsplash.com/photo-1518709268805-4e9042af2176?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://research.google/",
			Age:         7 * time.Hour,
			IsPremium:   true,
		},
		{
			Title:       "MedGemma: Multimodal Medical AI Breakthrough",
			Description: "Open model architecture for medical text and image comprehension, enabling AI applications in healthcare diagnosis and medical research analysis.",
			Category:    source.CategoryResearch,
			ImageURL:    "https://images.unsplash.com/photo-1576091160399-112ba8d25d1f?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://blog.google/technology/google-deepmind/",
			Age:         10 * time.Hour,
		},

		// Tools
		{
			Title:       "Sora Video Model: Text-to-Video Generation",
			Description: "OpenAI's Sora model now available for ChatGPT Plus and Pro users, enabling high-quality video generation from text prompts with cinematic quality.",
			Category:    source.CategoryTools,
			ImageURL:    "https://images.unsplash.com/photo-1574717024653-61fd2cf4d44d?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://openai.com/news/",
			Age:         1 * time.Hour,
			IsPremium:   true,
		},
		{
			Title:       "Google Project Mariner: Web-Browsing AI Agent",
			Description: "Advanced AI agent with computer-use capabilities that can navigate websites, fill forms, and complete complex web-based tasks autonomously.",
			Category:    source.CategoryTools,
			ImageURL:    "https://images.unsplash.com/photo-1460925895917-afdab827c52f?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://blog.google/technology/ai/",
			Age:         3 * time.Hour,
			IsPremium:   true,
		},
		{
			Title:       "Gemini CLI: Open-Source AI Agent for Developers",
			Description: "Command-line interface that brings AI agent capabilities directly to developer terminals, enabling code generation, debugging, and automation.",
			Category:    source.CategoryTools,
			ImageURL:    "https://images.unsplash.com/photo-1555066931-4365d14bab8c?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://github.com/google/gemini-cli",
			Age:         5 * time.Hour,
		},
		{
			Title:       "OpenAI Codex: Cloud-Based Software Engineering Agent",
			Description: "Revolutionary coding assistant that can handle parallel development tasks, code reviews, and complex software architecture planning in the cloud.",
			Category:    source.CategoryTools,
			ImageURL:    "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://openai.com/codex/",
			Age:         6 * time.Hour,
			IsPremium:   true,
		},
		{
			Title:       "Google Flow: AI Filmmaking and Video Creation",
			Description: "Advanced AI tool for creating cinematic clips and scenes, enabling creators to produce professional-quality video content through natural language prompts.",
			Category:    source.CategoryTools,
			ImageURL:    "https://images.unsplash.com/photo-1574717024653-61fd2cf4d44d?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://blog.google/technology/ai/",
			Age:         9 * time.Hour,
			IsPremium:   true,
		},

		// Tutorials
		{
			Title:       "Building AI Agents with Gemini 2.0: Complete Guide",
			Description: "Step-by-step tutorial on creating autonomous AI agents using Google's latest Gemini 2.0 model, featuring multimodal capabilities and computer-use functions.",
			Category:    source.CategoryTutorial,
			ImageURL:    "https://images.unsplash.com/photo-1515879218367-8466d910aaa4?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://developers.googleblog.com/",
			Age:         4 * time.Hour,
			Duration:    "45 min",
		},
		{
			Title:       "ChatGPT Advanced Voice Mode: Integration Tutorial",
			Description: "Learn how to integrate OpenAI's Advanced Voice Mode into your applications with updated conversational capabilities and real-time translation features.",
			Category:    source.CategoryTutorial,
			ImageURL:    "https://images.unsplash.com/photo-1589254065878-42c9da997008?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://platform.openai.com/docs/",
			Age:         6 * time.Hour,
			IsPremium:   true,
			Duration:    "60 min",
		},
		{
			Title:       "Training Models on Trillium TPUs: Performance Guide",
			Description: "Master Google's sixth-generation TPUs for AI model training with practical examples, performance optimization, and cost-effective scaling strategies.",
			Category:    source.CategoryTutorial,
			ImageURL:    "https://images.unsplash.com/photo-1518709268805-4e9042af2176?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://cloud.google.com/tpu/docs/",
			Age:         8 * time.Hour,
			IsPremium:   true,
			Duration:    "90 min",
		},
		{
			Title:       "Implementing Deep Research with AI: Best Practices",
			Description: "Comprehensive guide to using AI for advanced research tasks, covering both OpenAI's Deep Research and Google's research assistant features.",
			Category:    source.CategoryTutorial,
			ImageURL:    "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			SourceURL:   "https://ai.google/research/",
			Age:         11 * time.Hour,
			Duration:    "30 min",
		},
	}
}
