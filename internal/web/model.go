package web

import "github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"

type loginPage struct {
	Error string
}

type postListPage struct {
	User    *blog.Identity
	Filters blog.Filter
	Posts   []blog.Post
	Error   string
}

type postDetailPage struct {
	User     *blog.Identity
	Post     *blog.Post
	Comments []blog.Comment
	IsEditor bool
	Error    string
}

type addPostPage struct {
	User      *blog.Identity
	Title     string
	Content   string
	IsConcept bool
	Error     string
}

type conceptListPage struct {
	User    *blog.Identity
	Filters blog.Filter
	Posts   []blog.Post
	Error   string
}
