// Package seed holds the fixture dataset loaded by `ncnews seed` and by the
// test suites. Ids are explicit so that tests can refer to article 1 or
// comment 2 and get the same rows on every store.
package seed

import (
	"time"

	"github.com/sakif/nc-news/internal/model"
)

// Data is a complete dataset. Stores load it in order: topics, users,
// articles, comments.
type Data struct {
	Topics   []model.Topic
	Users    []model.User
	Articles []model.Article
	Comments []model.Comment
}

func ts(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

// Default returns a fresh copy of the fixture dataset.
//
// Shape the tests depend on:
//   - 3 topics; "paper" has no articles
//   - 4 users; "lurker" has written no articles
//   - 12 articles, 11 in "mitch", 1 in "cats"
//   - 18 comments, 13 of them on article 1
func Default() Data {
	return Data{
		Topics: []model.Topic{
			{Slug: "mitch", Description: "The man, the Mitch, the legend"},
			{Slug: "cats", Description: "Not dogs"},
			{Slug: "paper", Description: "what books are made of"},
		},
		Users: []model.User{
			{Username: "butter_bridge", Name: "jonny", AvatarURL: "https://www.healthytherapies.com/wp-content/uploads/2016/06/Lime3.jpg"},
			{Username: "icellusedkars", Name: "sam", AvatarURL: "https://avatars2.githubusercontent.com/u/24604688?s=460&v=4"},
			{Username: "rogersop", Name: "paul", AvatarURL: "https://avatars2.githubusercontent.com/u/24394918?s=400&v=4"},
			{Username: "lurker", Name: "do_nothing", AvatarURL: "https://www.golenbock.com/wp-content/uploads/2015/01/placeholder-user.png"},
		},
		Articles: []model.Article{
			{ArticleID: 1, Title: "Living in the shadow of a great man", Topic: "mitch", Author: "butter_bridge", Body: "I find this existence challenging", CreatedAt: ts(2018, time.November, 15, 12, 21), Votes: 100},
			{ArticleID: 2, Title: "Sony Vaio; or, The Laptop", Topic: "mitch", Author: "icellusedkars", Body: "Call me Mitchell. Some years ago I decided to sail about a little and see the watery part of the world.", CreatedAt: ts(2014, time.November, 16, 12, 21)},
			{ArticleID: 3, Title: "Eight pug gifs that remind me of mitch", Topic: "mitch", Author: "icellusedkars", Body: "some gifs", CreatedAt: ts(2010, time.November, 17, 12, 21)},
			{ArticleID: 4, Title: "Student SUES Mitch!", Topic: "mitch", Author: "rogersop", Body: "We all love Mitch and his wonderful, unique typing style.", CreatedAt: ts(2006, time.November, 18, 12, 21)},
			{ArticleID: 5, Title: "UNCOVERED: catspiracy to bring down democracy", Topic: "cats", Author: "rogersop", Body: "Bastet walks amongst us, and the cats are taking arms!", CreatedAt: ts(2002, time.November, 19, 12, 21)},
			{ArticleID: 6, Title: "A", Topic: "mitch", Author: "icellusedkars", Body: "Delicious tin of cat food", CreatedAt: ts(1998, time.November, 20, 12, 21)},
			{ArticleID: 7, Title: "Z", Topic: "mitch", Author: "icellusedkars", Body: "I was hungry.", CreatedAt: ts(1994, time.November, 21, 12, 21)},
			{ArticleID: 8, Title: "Does Mitch predate civilisation?", Topic: "mitch", Author: "icellusedkars", Body: "Archaeologists have uncovered a gigantic statue from the dawn of humanity.", CreatedAt: ts(1990, time.November, 22, 12, 21)},
			{ArticleID: 9, Title: "They're not exactly dogs, are they?", Topic: "mitch", Author: "butter_bridge", Body: "Well? Think about it.", CreatedAt: ts(1986, time.November, 23, 12, 21)},
			{ArticleID: 10, Title: "Seven inspirational thought leaders from Manchester UK", Topic: "mitch", Author: "rogersop", Body: "Who are we kidding, there is only one, and it's Mitch!", CreatedAt: ts(1982, time.November, 24, 12, 21)},
			{ArticleID: 11, Title: "Am I a cat?", Topic: "mitch", Author: "icellusedkars", Body: "Having run out of ideas for articles, I am staring at the wall blankly, like a cat.", CreatedAt: ts(1978, time.November, 25, 12, 21)},
			{ArticleID: 12, Title: "Moustache", Topic: "mitch", Author: "butter_bridge", Body: "Have you seen the size of that thing?", CreatedAt: ts(1974, time.November, 26, 12, 21)},
		},
		Comments: []model.Comment{
			{CommentID: 1, ArticleID: 9, Author: "butter_bridge", Body: "Oh, I've got compassion running out of my nose, pal! I'm the Sultan of Sentiment!", Votes: 16, CreatedAt: ts(2017, time.November, 22, 12, 36)},
			{CommentID: 2, ArticleID: 1, Author: "butter_bridge", Body: "The beautiful thing about treasure is that it exists. Got to find out what kind of sheets these are; not cotton, not rayon, silky.", Votes: 14, CreatedAt: ts(2016, time.November, 22, 12, 36)},
			{CommentID: 3, ArticleID: 1, Author: "icellusedkars", Body: "Replacing the quiet elegance of the dark suit and tie with the casual indifference of these muted earth tones is a form of fashion suicide, but, uh, call me crazy, on you it works.", Votes: 100, CreatedAt: ts(2015, time.November, 23, 12, 36)},
			{CommentID: 4, ArticleID: 1, Author: "icellusedkars", Body: "I carry a log, yes. Is it funny to you? It is not to me.", Votes: -100, CreatedAt: ts(2014, time.November, 23, 12, 36)},
			{CommentID: 5, ArticleID: 1, Author: "icellusedkars", Body: "I hate streaming noses", Votes: 0, CreatedAt: ts(2013, time.November, 23, 12, 36)},
			{CommentID: 6, ArticleID: 1, Author: "icellusedkars", Body: "I hate streaming eyes even more", Votes: 0, CreatedAt: ts(2012, time.November, 23, 12, 36)},
			{CommentID: 7, ArticleID: 1, Author: "icellusedkars", Body: "Lobster pot", Votes: 0, CreatedAt: ts(2011, time.November, 24, 12, 36)},
			{CommentID: 8, ArticleID: 1, Author: "icellusedkars", Body: "Delicious crackerbreads", Votes: 0, CreatedAt: ts(2010, time.November, 24, 12, 36)},
			{CommentID: 9, ArticleID: 1, Author: "icellusedkars", Body: "Superficially charming", Votes: 0, CreatedAt: ts(2009, time.November, 24, 12, 36)},
			{CommentID: 10, ArticleID: 1, Author: "icellusedkars", Body: "git push origin master", Votes: 0, CreatedAt: ts(2008, time.November, 24, 12, 36)},
			{CommentID: 11, ArticleID: 1, Author: "icellusedkars", Body: "Ambidextrous marsupial", Votes: 0, CreatedAt: ts(2007, time.November, 24, 12, 36)},
			{CommentID: 12, ArticleID: 1, Author: "icellusedkars", Body: "Massive intercranial brain haemorrhage", Votes: 0, CreatedAt: ts(2006, time.November, 25, 12, 36)},
			{CommentID: 13, ArticleID: 1, Author: "icellusedkars", Body: "Fruit pastilles", Votes: 0, CreatedAt: ts(2005, time.November, 25, 12, 36)},
			{CommentID: 14, ArticleID: 5, Author: "icellusedkars", Body: "What do you see? I have no idea where this will lead us. This place I speak of, is known as the Black Lodge.", Votes: 16, CreatedAt: ts(2004, time.November, 25, 12, 36)},
			{CommentID: 15, ArticleID: 1, Author: "butter_bridge", Body: "I am 100% sure that we're not completely sure.", Votes: 1, CreatedAt: ts(2003, time.November, 26, 12, 36)},
			{CommentID: 16, ArticleID: 6, Author: "butter_bridge", Body: "This is a bad article name", Votes: 1, CreatedAt: ts(2002, time.November, 26, 12, 36)},
			{CommentID: 17, ArticleID: 9, Author: "icellusedkars", Body: "The owls are not what they seem.", Votes: 20, CreatedAt: ts(2001, time.November, 26, 12, 36)},
			{CommentID: 18, ArticleID: 9, Author: "butter_bridge", Body: "This morning, I showered for nine minutes.", Votes: 16, CreatedAt: ts(2000, time.November, 26, 12, 36)},
		},
	}
}
