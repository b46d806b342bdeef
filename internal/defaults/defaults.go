// Package defaults supplies the built-in home-screen content used to seed the
// reserved "default" record and as the fallback when no stored content is
// usable.
package defaults

import (
    "github.com/google/uuid"

    "github.com/zaqqye/homescreen_backend_v1/internal/models"
)

// Payload returns a fresh copy of the default home-screen content. The copy
// is always valid under the validation rules; callers may mutate it freely.
func Payload() models.ConfigPayload {
    return models.ConfigPayload{
        Carousel: models.CarouselConfig{
            Slides: []models.CarouselSlide{
                {
                    ID:          "slide-1",
                    ImageURL:    "https://articles.hepper.com/wp-content/uploads/2022/10/Long-haired-cream-dachshund-running.jpg",
                    AltText:     "blonde dachshund running",
                    LinkURL:     "#",
                    AspectRatio: models.AspectLandscape,
                },
                {
                    ID:          "slide-2",
                    ImageURL:    "https://www.borrowmydoggy.com/_next/image?url=https%3A%2F%2Fcdn.sanity.io%2Fimages%2F4ij0poqn%2Fproduction%2F2b1b8fc4b6cf03c02f869d67f3f16187396264c0-3999x3999.jpg%3Ffit%3Dmax%26auto%3Dformat&w=1080&q=75",
                    AltText:     "black and tan dachshund",
                    LinkURL:     "##",
                    AspectRatio: models.AspectSquare,
                },
                {
                    ID:          "slide-3",
                    ImageURL:    "https://t3.ftcdn.net/jpg/02/22/15/32/360_F_222153281_QGFYDh6V99PQyxaaOIf4FYLfUZK8ECfV.jpg",
                    AltText:     "reddish brown dachshund",
                    LinkURL:     "###",
                    AspectRatio: models.AspectLandscape,
                },
            },
        },
        Text: models.TextConfig{
            Heading:          "Welcome to Our Store",
            HeadingColor:     "#000000",
            Description:      "Browse our curated collection of premium items designed to elevate your everyday experience.",
            DescriptionColor: "#000000",
        },
        Cta: models.CtaConfig{
            PrimaryText:      "Shop Now",
            PrimaryURL:       "/shop",
            PrimaryColor:     "#000000",
            PrimaryTextColor: "#ffffff",
        },
    }
}

// NewSlideID generates a collision-resistant identifier for a new slide.
func NewSlideID() string {
    return "slide-" + uuid.NewString()
}
