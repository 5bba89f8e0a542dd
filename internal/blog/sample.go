package blog

// SamplePosts is the built-in corpus used when no content is configured.
func SamplePosts() []Post {
	posts := []Post{
		newPost("1", "why i think at 3am better than 3pm", "nov 8", "thoughts",
			"there's something about the quiet of 3am that just hits different. no notifications, no people, just me and my thoughts. it's like the world is on mute and suddenly all my best ideas show up uninvited. is this healthy? probably not. do i care? also probably not."),
		newPost("2", "my coffee dependency: a timeline", "nov 5", "life",
			"age 15: coffee is gross. age 18: ok maybe one cup. age 20: two cups. age 22: i've lost count and my blood type is now espresso. age 25: i am the coffee. there's no going back. send help (but make it iced)."),
		newPost("3", "the art of pretending to be productive", "nov 2", "mood",
			"opened my laptop 4 hours ago. stared at the screen. rearranged my desk. made coffee. checked the time. it's been 4 hours. i've done nothing except convince myself that 'thinking about doing it' counts as progress. it doesn't. but tomorrow is a new day to repeat this exact cycle."),
		newPost("4", "introvert survival guide", "oct 30", "social",
			"someone: 'let's hang out!' me: 'sounds good!' also me: *immediately starts planning excuses for 3 days from now* it's not that i don't like people. i just like the idea of people more than actual people. is that weird? don't answer that."),
	}
	SortPosts(posts)
	return posts
}
